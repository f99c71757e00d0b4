package wompi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	wompiclient "github.com/eshop-labs/checkout-api/internal/clients/http/wompi"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

func TestAmountInCents(t *testing.T) {
	require.Equal(t, int64(450000000), amountInCents(decimal.NewFromInt(4500000)))
	require.Equal(t, int64(1050), amountInCents(decimal.RequireFromString("10.50")))
	require.Equal(t, int64(1000), amountInCents(decimal.RequireFromString("9.999")))
}

func TestGetStatus_MapsVoidedToDeclined(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /transactions/txn-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"txn-1","status":"VOIDED","currency":"COP","amount_in_cents":1000}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := wompiclient.New(wompiclient.Config{
		BaseURL:         server.URL,
		PublicKey:       "pub",
		PrivateKey:      "prv",
		IntegritySecret: "secret",
		HTTPClient:      server.Client(),
	})
	require.NoError(t, err)
	gateway, err := NewGateway(client)
	require.NoError(t, err)

	result, err := gateway.GetStatus(context.Background(), "txn-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDeclined, result.Status)
}

func TestGetStatus_WrapsGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := wompiclient.New(wompiclient.Config{
		BaseURL:         server.URL,
		PublicKey:       "pub",
		PrivateKey:      "prv",
		IntegritySecret: "secret",
		HTTPClient:      server.Client(),
	})
	require.NoError(t, err)
	gateway, err := NewGateway(client)
	require.NoError(t, err)

	_, err = gateway.GetStatus(context.Background(), "txn-1")
	require.ErrorIs(t, err, ports.ErrGateway)
}

func TestNewGateway_RequiresClient(t *testing.T) {
	_, err := NewGateway(nil)
	require.Error(t, err)
}
