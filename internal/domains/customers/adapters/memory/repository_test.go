package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
)

func TestSaveAndGetByEmail_CaseInsensitive(t *testing.T) {
	repo := NewRepository()

	customer, err := domain.NewCustomer("Jane Doe", "Jane@Example.com", "3001234567")
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), customer)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", saved.Email)

	found, err := repo.GetByEmail(context.Background(), "JANE@example.COM")
	require.NoError(t, err)
	require.Equal(t, saved.ID, found.ID)
}

func TestSave_DuplicateEmail(t *testing.T) {
	repo := NewRepository()

	first, err := domain.NewCustomer("Jane Doe", "jane@example.com", "3001234567")
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), first)
	require.NoError(t, err)

	second, err := domain.NewCustomer("Other Jane", "jane@example.com", "3007654321")
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), second)
	require.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestGetByID_RoundTrip(t *testing.T) {
	repo := NewRepository()

	customer, err := domain.NewCustomer("Jane Doe", "jane@example.com", "3001234567")
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), customer)
	require.NoError(t, err)

	found, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.Email, found.Email)
}
