package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
)

// Service creates and reads shipping records.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateDelivery persists a new shipping record in its initial state.
func (s *Service) CreateDelivery(ctx context.Context, input ports.CreateDeliveryInput) (*domain.Delivery, error) {
	if input.TransactionID == uuid.Nil {
		return nil, domain.ErrMissingTransaction
	}
	delivery := &domain.Delivery{
		ID:            uuid.New(),
		TransactionID: input.TransactionID,
		CustomerID:    input.CustomerID,
		Address:       input.Address,
		City:          input.City,
		Region:        input.Region,
		Country:       input.Country,
		PostalCode:    input.PostalCode,
		Status:        domain.StatusToDeliver,
	}
	return s.repo.Save(ctx, delivery)
}

func (s *Service) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.Delivery, error) {
	return s.repo.GetByTransactionID(ctx, transactionID)
}

var _ ports.Service = (*Service)(nil)
