// Package wompi wraps the card-processing provider's REST API: card
// tokenization, merchant acceptance tokens, charge creation, and charge
// status lookup.
package wompi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config carries the provider credentials. The public key authorizes
// tokenization, the private key authorizes charges, and the integrity
// secret signs each charge request.
type Config struct {
	BaseURL         string
	PublicKey       string
	PrivateKey      string
	IntegritySecret string
	HTTPClient      *http.Client
}

// Client talks to the provider over HTTP.
type Client struct {
	baseURL         string
	publicKey       string
	privateKey      string
	integritySecret string
	http            *http.Client
}

// New instantiates the provider client with sane defaults.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("wompi base URL is required")
	}
	if strings.TrimSpace(cfg.PublicKey) == "" || strings.TrimSpace(cfg.PrivateKey) == "" {
		return nil, errors.New("wompi API keys are required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:         baseURL,
		publicKey:       cfg.PublicKey,
		privateKey:      cfg.PrivateKey,
		integritySecret: cfg.IntegritySecret,
		http:            httpClient,
	}, nil
}

// Card is the raw card payload sent for tokenization. It lives in memory
// only for the duration of the call.
type Card struct {
	Number     string `json:"number"`
	CVC        string `json:"cvc"`
	ExpMonth   string `json:"exp_month"`
	ExpYear    string `json:"exp_year"`
	CardHolder string `json:"card_holder"`
}

// TransactionResult is the provider's view of a charge.
type TransactionResult struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Currency      string `json:"currency"`
	AmountInCents int64  `json:"amount_in_cents"`
}

// CreateTransaction tokenizes the card, fetches the presigned acceptance
// token, signs the request, and submits the charge. The reference doubles
// as the idempotency key on the provider side.
func (c *Client) CreateTransaction(ctx context.Context, reference string, amountInCents int64, currency, customerEmail string, card Card, installments int) (*TransactionResult, error) {
	token, err := c.tokenizeCard(ctx, card)
	if err != nil {
		return nil, err
	}
	acceptanceToken, err := c.acceptanceToken(ctx)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"amount_in_cents": amountInCents,
		"currency":        currency,
		"customer_email":  customerEmail,
		"payment_method": map[string]any{
			"type":         "CARD",
			"token":        token,
			"installments": installments,
		},
		"reference":        reference,
		"acceptance_token": acceptanceToken,
		"signature":        c.integritySignature(reference, amountInCents, currency),
	}
	var result TransactionResult
	if err := c.do(ctx, http.MethodPost, "/transactions", c.privateKey, payload, &result); err != nil {
		return nil, fmt.Errorf("create wompi transaction: %w", err)
	}
	return &result, nil
}

// GetTransaction fetches the current status of a charge.
func (c *Client) GetTransaction(ctx context.Context, id string) (*TransactionResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("wompi transaction id is required")
	}
	var result TransactionResult
	if err := c.do(ctx, http.MethodGet, "/transactions/"+id, c.privateKey, nil, &result); err != nil {
		return nil, fmt.Errorf("fetch wompi transaction %s: %w", id, err)
	}
	return &result, nil
}

func (c *Client) tokenizeCard(ctx context.Context, card Card) (string, error) {
	var token struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/tokens/cards", c.publicKey, card, &token); err != nil {
		return "", fmt.Errorf("tokenize card: %w", err)
	}
	if token.ID == "" {
		return "", errors.New("tokenize card: empty token in response")
	}
	return token.ID, nil
}

func (c *Client) acceptanceToken(ctx context.Context) (string, error) {
	var merchant struct {
		PresignedAcceptance struct {
			AcceptanceToken string `json:"acceptance_token"`
		} `json:"presigned_acceptance"`
	}
	if err := c.do(ctx, http.MethodGet, "/merchants/"+c.publicKey, "", nil, &merchant); err != nil {
		return "", fmt.Errorf("fetch acceptance token: %w", err)
	}
	if merchant.PresignedAcceptance.AcceptanceToken == "" {
		return "", errors.New("fetch acceptance token: empty token in response")
	}
	return merchant.PresignedAcceptance.AcceptanceToken, nil
}

// integritySignature hashes reference + amount + currency + secret, the
// provider's required request signature.
func (c *Client) integritySignature(reference string, amountInCents int64, currency string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s%d%s%s", reference, amountInCents, currency, c.integritySecret))
	return hex.EncodeToString(sum[:])
}

// envelope mirrors the provider's {"data": ...} response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != nil {
			return fmt.Errorf("wompi API %s: %s (%s)", resp.Status, env.Error.Reason, env.Error.Type)
		}
		return fmt.Errorf("wompi API %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode wompi response: %w", err)
	}
	if env.Data == nil {
		return errors.New("wompi response missing data")
	}
	return json.Unmarshal(env.Data, out)
}
