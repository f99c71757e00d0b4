package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
)

// CreateDeliveryInput carries the address snapshot copied verbatim from the
// originating transaction.
type CreateDeliveryInput struct {
	TransactionID uuid.UUID
	CustomerID    uuid.UUID
	Address       string
	City          string
	Region        string
	Country       string
	PostalCode    string
}

// Service exposes delivery use cases. Creation carries no conditional logic
// of its own; the checkout engine decides when to call it.
type Service interface {
	CreateDelivery(ctx context.Context, input CreateDeliveryInput) (*domain.Delivery, error)
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.Delivery, error)
}
