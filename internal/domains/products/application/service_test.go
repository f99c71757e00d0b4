package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	productmemory "github.com/eshop-labs/checkout-api/internal/domains/products/adapters/memory"
	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/products/ports"
	"github.com/eshop-labs/checkout-api/internal/domains/products/seed"
)

func TestListProducts_OrderedByName(t *testing.T) {
	repo := productmemory.NewRepository()
	svc := NewService(repo)

	for _, name := range []string{"Zeta", "Alpha"} {
		product, err := domain.NewProduct(0, name, "", decimal.NewFromInt(100), 5, "")
		require.NoError(t, err)
		_, err = repo.Save(context.Background(), product)
		require.NoError(t, err)
	}

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Alpha", list[0].Name)
	require.Equal(t, "Zeta", list[1].Name)
}

func TestGetProductByID_NotFound(t *testing.T) {
	svc := NewService(productmemory.NewRepository())

	_, err := svc.GetProductByID(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSeed_PopulatesEmptyCatalogOnce(t *testing.T) {
	repo := productmemory.NewRepository()

	require.NoError(t, seed.Run(context.Background(), repo))
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Seeding again must not duplicate the catalog.
	require.NoError(t, seed.Run(context.Background(), repo))
	list, err = repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
}

func TestDecrementStock_StopsAtZero(t *testing.T) {
	repo := productmemory.NewRepository()
	product, err := domain.NewProduct(1, "Keyboard", "", decimal.NewFromInt(100), 1, "")
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), product)
	require.NoError(t, err)

	require.NoError(t, repo.DecrementStock(context.Background(), 1))
	require.ErrorIs(t, repo.DecrementStock(context.Background(), 1), ports.ErrOutOfStock)

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, stored.Stock)
}
