package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eshop-labs/checkout-api/internal/app/api"
	wompiclient "github.com/eshop-labs/checkout-api/internal/clients/http/wompi"
	checkoutwompi "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/external/wompi"
	checkoutpostgres "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/persistence/postgres"
	checkoutapp "github.com/eshop-labs/checkout-api/internal/domains/checkout/application"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	checkoutports "github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
	customerpostgres "github.com/eshop-labs/checkout-api/internal/domains/customers/adapters/persistence/postgres"
	deliverypostgres "github.com/eshop-labs/checkout-api/internal/domains/deliveries/adapters/persistence/postgres"
	deliveryapp "github.com/eshop-labs/checkout-api/internal/domains/deliveries/application"
	productpostgres "github.com/eshop-labs/checkout-api/internal/domains/products/adapters/persistence/postgres"
	platformpostgres "github.com/eshop-labs/checkout-api/internal/platform/postgres"
)

const defaultStaleAfterMinutes = 10

// One-shot sweep over stale PENDING transactions. Intended to run on a
// schedule as a safety net behind the reconciliation workflow.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot reconcile transactions")
	}

	gatewayClient, err := wompiclient.New(wompiclient.Config{
		BaseURL:         cfg.WompiBaseURL,
		PublicKey:       cfg.WompiPublicKey,
		PrivateKey:      cfg.WompiPrivateKey,
		IntegritySecret: cfg.WompiIntegritySecret,
		HTTPClient:      &http.Client{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.Fatalf("failed to configure gateway client: %v", err)
	}
	gateway, err := checkoutwompi.NewGateway(gatewayClient)
	if err != nil {
		log.Fatalf("failed to configure payment gateway: %v", err)
	}

	transactions := checkoutpostgres.NewRepository(db)
	service := checkoutapp.NewService(
		transactions,
		productpostgres.NewRepository(db),
		customerpostgres.NewRepository(db),
		deliveryapp.NewService(deliverypostgres.NewRepository(db)),
		gateway,
		checkoutapp.WithLogger(logger),
	)

	stale, err := listStalePending(ctx, transactions)
	if err != nil {
		log.Fatalf("failed to list stale pending transactions: %v", err)
	}
	reconciled, failed := 0, 0
	for _, transaction := range stale {
		if transaction.GatewayID == "" {
			continue
		}
		if _, err := service.ReconcileStatus(ctx, transaction.ID); err != nil {
			failed++
			logger.Warn("reconciliation failed",
				slog.String("transaction_id", transaction.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		reconciled++
	}
	log.Printf("reconciliation sweep completed: %d candidates, %d reconciled, %d failed", len(stale), reconciled, failed)
}

func listStalePending(ctx context.Context, transactions checkoutports.Repository) ([]*domain.Transaction, error) {
	pending := domain.StatusPending
	cutoff := time.Now().UTC().Add(-staleAfterFromEnv())
	return transactions.List(ctx, checkoutports.ListFilter{Status: &pending, To: &cutoff})
}

func staleAfterFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("RECONCILE_STALE_AFTER_MINUTES"))
	if raw == "" {
		return defaultStaleAfterMinutes * time.Minute
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return defaultStaleAfterMinutes * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}
