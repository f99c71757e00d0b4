package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	customermemory "github.com/eshop-labs/checkout-api/internal/domains/customers/adapters/memory"
	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
)

func TestGetByEmail_NormalizesAddress(t *testing.T) {
	repo := customermemory.NewRepository()
	customer, err := domain.NewCustomer("Jane Doe", "Jane@Example.com", "3001234567")
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), customer)
	require.NoError(t, err)

	service := NewService(repo)
	found, err := service.GetByEmail(context.Background(), "  JANE@example.COM ")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", found.Email)
}

func TestGetByEmail_NotFound(t *testing.T) {
	service := NewService(customermemory.NewRepository())

	_, err := service.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = service.GetByEmail(context.Background(), "   ")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
