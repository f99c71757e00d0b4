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

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
	"github.com/eshop-labs/checkout-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("deliveries_test"),
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

func newDelivery(transactionID uuid.UUID) *domain.Delivery {
	return &domain.Delivery{
		ID:            uuid.New(),
		TransactionID: transactionID,
		CustomerID:    uuid.New(),
		Address:       "Cra 7 # 12-34",
		City:          "Bogota",
		Region:        "Cundinamarca",
		Country:       "CO",
		PostalCode:    "110111",
		Status:        domain.StatusToDeliver,
	}
}

func TestDeliveryRepository_SaveAndGetByTransactionID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	transactionID := uuid.New()
	saved, err := repo.Save(ctx, newDelivery(transactionID))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDeliver, saved.Status)

	retrieved, err := repo.GetByTransactionID(ctx, transactionID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, retrieved.ID)
	assert.Equal(t, "Bogota", retrieved.City)
}

func TestDeliveryRepository_UniqueTransactionIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	transactionID := uuid.New()
	_, err := repo.Save(ctx, newDelivery(transactionID))
	require.NoError(t, err)

	// The unique index on transaction_id backstops the at-most-once
	// approval side effect even under racing inserts.
	_, err = repo.Save(ctx, newDelivery(transactionID))
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)
}

func TestDeliveryRepository_GetByTransactionID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.GetByTransactionID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
