package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
)

var ErrNotFound = errors.New("transaction not found")

// ListFilter narrows transaction listings. Nil fields are ignored.
type ListFilter struct {
	Status     *domain.Status
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// Repository persists transactions. Status moves only through
// CompareAndSwapStatus so concurrent reconciliations cannot clobber each
// other or re-fire approval side effects.
type Repository interface {
	Save(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Transaction, error)
	// SetGatewayID records the gateway-assigned id once the charge is accepted.
	SetGatewayID(ctx context.Context, id uuid.UUID, gatewayID string) error
	// CompareAndSwapStatus transitions id from one status to another and
	// reports whether this call performed the swap. A false return without
	// error means the stored status no longer matched.
	CompareAndSwapStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) (bool, error)
}
