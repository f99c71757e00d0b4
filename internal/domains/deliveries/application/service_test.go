package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	deliverymemory "github.com/eshop-labs/checkout-api/internal/domains/deliveries/adapters/memory"
	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
)

func createInput(transactionID uuid.UUID) ports.CreateDeliveryInput {
	return ports.CreateDeliveryInput{
		TransactionID: transactionID,
		CustomerID:    uuid.New(),
		Address:       "Cra 7 # 12-34",
		City:          "Bogota",
		Region:        "Cundinamarca",
		Country:       "CO",
		PostalCode:    "110111",
	}
}

func TestCreateDelivery_StartsInInitialState(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())

	transactionID := uuid.New()
	delivery, err := svc.CreateDelivery(context.Background(), createInput(transactionID))
	require.NoError(t, err)
	require.Equal(t, domain.StatusToDeliver, delivery.Status)
	require.Equal(t, transactionID, delivery.TransactionID)
	require.NotEqual(t, uuid.Nil, delivery.ID)

	found, err := svc.GetByTransactionID(context.Background(), transactionID)
	require.NoError(t, err)
	require.Equal(t, delivery.ID, found.ID)
}

func TestCreateDelivery_RejectsSecondForSameTransaction(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())

	transactionID := uuid.New()
	_, err := svc.CreateDelivery(context.Background(), createInput(transactionID))
	require.NoError(t, err)

	_, err = svc.CreateDelivery(context.Background(), createInput(transactionID))
	require.ErrorIs(t, err, ports.ErrAlreadyExists)
}

func TestCreateDelivery_RequiresTransaction(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())

	_, err := svc.CreateDelivery(context.Background(), createInput(uuid.Nil))
	require.ErrorIs(t, err, domain.ErrMissingTransaction)
}

func TestGetByTransactionID_NotFound(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())

	_, err := svc.GetByTransactionID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
