package ports

import (
	"context"
	"errors"

	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrOutOfStock is returned by DecrementStock when no unit is left to sell.
	ErrOutOfStock = errors.New("product out of stock")
)

// Repository persists catalog products and owns the atomic stock decrement.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// List returns the catalog ordered by name.
	List(ctx context.Context) ([]*domain.Product, error)
	// DecrementStock atomically takes one unit off the shelf. The storage
	// layer must refuse to go below zero even under racing approvals.
	DecrementStock(ctx context.Context, id int64) error
}
