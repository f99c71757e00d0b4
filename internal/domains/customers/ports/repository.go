package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrDuplicateEmail signals the email uniqueness constraint fired on
	// insert. Callers should re-fetch by email rather than fail the request.
	ErrDuplicateEmail = errors.New("customer email already registered")
)

// Repository persists customers and enforces email uniqueness at the storage
// boundary.
type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}
