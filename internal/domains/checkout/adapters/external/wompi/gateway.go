// Package wompi adapts the provider HTTP client to the checkout payment
// gateway port.
package wompi

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	wompiclient "github.com/eshop-labs/checkout-api/internal/clients/http/wompi"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

// Charges are denominated in Colombian pesos.
const currency = "COP"

var _ ports.PaymentGateway = (*Gateway)(nil)

// Gateway submits charges and status queries to the provider.
type Gateway struct {
	client *wompiclient.Client
}

func NewGateway(client *wompiclient.Client) (*Gateway, error) {
	if client == nil {
		return nil, errors.New("wompi client is required")
	}
	return &Gateway{client: client}, nil
}

// Charge submits a card charge using the transaction id as the provider
// reference, which makes retried submissions idempotent on their side.
func (g *Gateway) Charge(ctx context.Context, reference string, amount decimal.Decimal, customerEmail string, card domain.CardDetails, installments int) (*ports.ChargeResult, error) {
	if installments < 1 {
		installments = 1
	}
	result, err := g.client.CreateTransaction(ctx, reference, amountInCents(amount), currency, customerEmail, wompiclient.Card{
		Number:     card.Number,
		CVC:        card.CVC,
		ExpMonth:   card.ExpMonth,
		ExpYear:    card.ExpYear,
		CardHolder: card.Holder,
	}, installments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrGateway, err)
	}
	return toChargeResult(result), nil
}

// GetStatus fetches the provider's current view of a charge.
func (g *Gateway) GetStatus(ctx context.Context, gatewayID string) (*ports.ChargeResult, error) {
	result, err := g.client.GetTransaction(ctx, gatewayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrGateway, err)
	}
	return toChargeResult(result), nil
}

func amountInCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func toChargeResult(result *wompiclient.TransactionResult) *ports.ChargeResult {
	return &ports.ChargeResult{
		GatewayID:     result.ID,
		Status:        domain.ParseStatus(result.Status),
		Currency:      result.Currency,
		AmountInCents: result.AmountInCents,
	}
}
