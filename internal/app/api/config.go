package api

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// DefaultWompiBaseURL points at the provider sandbox used outside production.
const DefaultWompiBaseURL = "https://api-sandbox.co.uat.wompi.dev/v1"

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                 string
	PostgresDSN          string
	WompiBaseURL         string
	WompiPublicKey       string
	WompiPrivateKey      string
	WompiIntegritySecret string
	TemporalAddress      string
	TemporalNamespace    string
	TemporalDisabled     bool
	SeedDisabled         bool
	CORSAllowedOrigins   string
}

// LoadConfig reads .env plus environment variables, applies defaults, and
// validates that the payment provider credentials are present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                 envDefault("PORT", "8080"),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		WompiBaseURL:         envDefault("WOMPI_BASE_URL", DefaultWompiBaseURL),
		WompiPublicKey:       strings.TrimSpace(os.Getenv("WOMPI_PUBLIC_KEY")),
		WompiPrivateKey:      strings.TrimSpace(os.Getenv("WOMPI_PRIVATE_KEY")),
		WompiIntegritySecret: strings.TrimSpace(os.Getenv("WOMPI_INTEGRITY_SECRET")),
		TemporalAddress:      envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:    envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:     isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SeedDisabled:         isTruthy(os.Getenv("SEED_DISABLED")),
		CORSAllowedOrigins:   strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
	if cfg.WompiPublicKey == "" || cfg.WompiPrivateKey == "" {
		return Config{}, fmt.Errorf("WOMPI_PUBLIC_KEY and WOMPI_PRIVATE_KEY must be set")
	}
	if cfg.WompiIntegritySecret == "" {
		return Config{}, fmt.Errorf("WOMPI_INTEGRITY_SECRET must be set")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
