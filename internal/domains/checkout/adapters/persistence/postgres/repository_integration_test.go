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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
	"github.com/eshop-labs/checkout-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("checkout_test"),
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

func newPendingTransaction(t *testing.T) *domain.Transaction {
	t.Helper()
	transaction, err := domain.NewTransaction(
		1,
		uuid.New(),
		decimal.NewFromInt(4500000),
		domain.DeliveryInfo{Address: "Cra 7 # 12-34", City: "Bogota", Region: "Cundinamarca", Country: "CO", PostalCode: "110111"},
		domain.CardDetails{Number: "4111111111111111", CVC: "123", ExpMonth: "12", ExpYear: "29", Holder: "JANE DOE"},
	)
	require.NoError(t, err)
	return transaction
}

func TestTransactionRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	transaction := newPendingTransaction(t)
	saved, err := repo.Save(ctx, transaction)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, saved.Status)

	retrieved, err := repo.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.CustomerID, retrieved.CustomerID)
	assert.Equal(t, "Bogota", retrieved.DeliveryInfo.City)
	assert.Equal(t, "**** **** **** 1111", retrieved.PaymentSummary.CardNumber)
	assert.True(t, transaction.Amount.Equal(retrieved.Amount))
}

func TestTransactionRepository_CompareAndSwapStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	transaction := newPendingTransaction(t)
	_, err := repo.Save(ctx, transaction)
	require.NoError(t, err)

	swapped, err := repo.CompareAndSwapStatus(ctx, transaction.ID, domain.StatusPending, domain.StatusApproved)
	require.NoError(t, err)
	assert.True(t, swapped)

	// The swap is conditional on the stored value: a second racer loses.
	swapped, err = repo.CompareAndSwapStatus(ctx, transaction.ID, domain.StatusPending, domain.StatusDeclined)
	require.NoError(t, err)
	assert.False(t, swapped)

	retrieved, err := repo.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, retrieved.Status)
}

func TestTransactionRepository_SaveDoesNotClobberStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	transaction := newPendingTransaction(t)
	_, err := repo.Save(ctx, transaction)
	require.NoError(t, err)

	swapped, err := repo.CompareAndSwapStatus(ctx, transaction.ID, domain.StatusPending, domain.StatusApproved)
	require.NoError(t, err)
	require.True(t, swapped)

	// Re-saving the stale aggregate must not reset the status column.
	saved, err := repo.Save(ctx, transaction)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, saved.Status)
}

func TestTransactionRepository_SetGatewayID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	transaction := newPendingTransaction(t)
	_, err := repo.Save(ctx, transaction)
	require.NoError(t, err)

	require.NoError(t, repo.SetGatewayID(ctx, transaction.ID, "gw-123"))
	retrieved, err := repo.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "gw-123", retrieved.GatewayID)

	err = repo.SetGatewayID(ctx, uuid.New(), "gw-999")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestTransactionRepository_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first := newPendingTransaction(t)
	_, err := repo.Save(ctx, first)
	require.NoError(t, err)
	second := newPendingTransaction(t)
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	swapped, err := repo.CompareAndSwapStatus(ctx, first.ID, domain.StatusPending, domain.StatusApproved)
	require.NoError(t, err)
	require.True(t, swapped)

	approved := domain.StatusApproved
	list, err := repo.List(ctx, ports.ListFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	list, err = repo.List(ctx, ports.ListFilter{CustomerID: &second.CustomerID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	all, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
