package ports

import (
	"context"

	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
)

// Service exposes customer read use cases to adapters. Writes happen only
// through the transaction lifecycle engine's upsert.
type Service interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}
