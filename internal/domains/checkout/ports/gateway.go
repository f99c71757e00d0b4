package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
)

// ErrGateway wraps any failure of the remote payment provider.
var ErrGateway = errors.New("payment gateway error")

// ChargeResult is the gateway's authoritative view of a charge.
type ChargeResult struct {
	GatewayID     string
	Status        domain.Status
	Currency      string
	AmountInCents int64
}

// PaymentGateway is the opaque remote surface the engine submits charges to.
// It may be slow and may fail transiently; its status is the source of truth
// for transitions into APPROVED and DECLINED.
type PaymentGateway interface {
	Charge(ctx context.Context, reference string, amount decimal.Decimal, customerEmail string, card domain.CardDetails, installments int) (*ChargeResult, error)
	GetStatus(ctx context.Context, gatewayID string) (*ChargeResult, error)
}
