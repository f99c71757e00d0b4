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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
	"github.com/eshop-labs/checkout-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("customers_test"),
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

func TestCustomerRepository_SaveAndGetByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	customer, err := domain.NewCustomer("Jane Doe", "Jane@Example.com", "3001234567")
	require.NoError(t, err)
	saved, err := repo.Save(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", saved.Email)

	retrieved, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, retrieved.ID)

	byID, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", byID.FullName)
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewCustomer("Jane Doe", "jane@example.com", "3001234567")
	require.NoError(t, err)
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	// The unique index turns a duplicate-insert race into a typed error
	// the engine resolves by re-fetching.
	second, err := domain.NewCustomer("Other Jane", "jane@example.com", "3007654321")
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}
