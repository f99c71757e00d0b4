package ports

import (
	"context"

	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
)

// Service exposes catalog read use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}
