//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/products/ports"
	"github.com/eshop-labs/checkout-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("products_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestProductRepository_SaveAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha"} {
		product, err := domain.NewProduct(0, name, "demo", decimal.NewFromInt(1000), 5, "")
		require.NoError(t, err)
		_, err = repo.Save(ctx, product)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
}

func TestProductRepository_DecrementStockFloor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct(1, "Keyboard", "demo", decimal.NewFromInt(1000), 1, "")
	require.NoError(t, err)
	_, err = repo.Save(ctx, product)
	require.NoError(t, err)

	require.NoError(t, repo.DecrementStock(ctx, 1))

	// The guarded UPDATE refuses to take stock below zero even when the
	// caller races ahead of a stale read.
	err = repo.DecrementStock(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrOutOfStock)

	stored, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)

	err = repo.DecrementStock(ctx, 99)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
