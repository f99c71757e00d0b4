package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
)

// CreateTransactionInput is the validated purchase request handed to the
// engine. The amount arrives from the caller and is deliberately not
// recomputed from the product price.
type CreateTransactionInput struct {
	ProductID     int64
	Amount        decimal.Decimal
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	DeliveryInfo  domain.DeliveryInfo
	Card          domain.CardDetails
	Installments  int
}

// Service exposes the transaction lifecycle use cases to adapters.
type Service interface {
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error)
	ReconcileStatus(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*domain.Transaction, error)
}
