//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "wompi-payments"
	ConsumerName = "checkout-api"

	StateMerchantReady     = "merchant with presigned acceptance exists"
	StateCardTokenizable   = "a tokenizable test card"
	StateChargeAccepted    = "charges are accepted"
	StateTransactionExists = "transaction txn-pact-1 exists"
)

const (
	ExistingTransactionID = "txn-pact-1"
	PublicKey             = "pub_test_pact"
	PrivateKey            = "prv_test_pact"
	IntegritySecret       = "pact_integrity_secret"
	AmountInCents   int64 = 450000000
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCardPayload provides stable card data for pact interactions.
func ExampleCardPayload() map[string]any {
	return map[string]any{
		"number":      "4111111111111111",
		"cvc":         "123",
		"exp_month":   "12",
		"exp_year":    "29",
		"card_holder": "JANE DOE",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
