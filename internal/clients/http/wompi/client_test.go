package wompi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCard() Card {
	return Card{
		Number:     "4111111111111111",
		CVC:        "123",
		ExpMonth:   "12",
		ExpYear:    "29",
		CardHolder: "JANE DOE",
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Config{
		BaseURL:         server.URL,
		PublicKey:       "pub_test_key",
		PrivateKey:      "prv_test_key",
		IntegritySecret: "integrity_secret",
		HTTPClient:      server.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestCreateTransaction_FullFlow(t *testing.T) {
	var chargePayload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tokens/cards", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer pub_test_key", r.Header.Get("Authorization"))
		var card Card
		require.NoError(t, json.NewDecoder(r.Body).Decode(&card))
		require.Equal(t, "4111111111111111", card.Number)
		fmt.Fprint(w, `{"data":{"id":"tok_test_1"}}`)
	})
	mux.HandleFunc("GET /merchants/pub_test_key", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"presigned_acceptance":{"acceptance_token":"acc_tok_1"}}}`)
	})
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer prv_test_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&chargePayload))
		fmt.Fprint(w, `{"data":{"id":"txn-123","status":"PENDING","currency":"COP","amount_in_cents":450000000}}`)
	})

	client := newTestClient(t, mux)
	result, err := client.CreateTransaction(context.Background(), "ref-1", 450000000, "COP", "jane@example.com", testCard(), 1)
	require.NoError(t, err)
	require.Equal(t, "txn-123", result.ID)
	require.Equal(t, "PENDING", result.Status)
	require.Equal(t, int64(450000000), result.AmountInCents)

	require.Equal(t, "tok_test_1", chargePayload["payment_method"].(map[string]any)["token"])
	require.Equal(t, "acc_tok_1", chargePayload["acceptance_token"])
	require.Equal(t, "ref-1", chargePayload["reference"])

	sum := sha256.Sum256([]byte("ref-1450000000COPintegrity_secret"))
	require.Equal(t, hex.EncodeToString(sum[:]), chargePayload["signature"])
}

func TestCreateTransaction_TokenizationFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tokens/cards", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"error":{"type":"INPUT_VALIDATION_ERROR","reason":"invalid card"}}`)
	})

	client := newTestClient(t, mux)
	_, err := client.CreateTransaction(context.Background(), "ref-1", 1000, "COP", "jane@example.com", testCard(), 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "tokenize card")
	require.Contains(t, err.Error(), "invalid card")
}

func TestGetTransaction(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /transactions/txn-123", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer prv_test_key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":{"id":"txn-123","status":"APPROVED","currency":"COP","amount_in_cents":450000000}}`)
	})

	client := newTestClient(t, mux)
	result, err := client.GetTransaction(context.Background(), "txn-123")
	require.NoError(t, err)
	require.Equal(t, "APPROVED", result.Status)
}

func TestGetTransaction_EmptyID(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	_, err := client.GetTransaction(context.Background(), "  ")
	require.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{PublicKey: "pub", PrivateKey: "prv"})
	require.Error(t, err)

	_, err = New(Config{BaseURL: "https://example.com", PublicKey: "pub"})
	require.Error(t, err)
}

func TestDo_MissingDataEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /transactions/txn-9", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	client := newTestClient(t, mux)
	_, err := client.GetTransaction(context.Background(), "txn-9")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing data")
}
