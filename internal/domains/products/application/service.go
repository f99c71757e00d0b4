package application

import (
	"context"

	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/products/ports"
)

// Service orchestrates catalog read use cases. Stock mutation belongs to the
// checkout engine, which talks to the repository directly.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
