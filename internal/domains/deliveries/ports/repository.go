package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
)

var (
	ErrNotFound = errors.New("delivery not found")
	// ErrAlreadyExists fires when a second delivery is inserted for the same
	// transaction. The unique index is the backstop for the at-most-once
	// approval side effect.
	ErrAlreadyExists = errors.New("delivery already exists for transaction")
)

// Repository persists deliveries keyed one-to-one to transactions.
type Repository interface {
	Save(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error)
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.Delivery, error)
}
