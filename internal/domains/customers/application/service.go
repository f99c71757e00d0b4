package application

import (
	"context"
	"strings"

	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
)

// Service reads customer profiles.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// GetByEmail looks up a customer under the canonical lowercased form of the
// address, matching how the upsert stores it.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

var _ ports.Service = (*Service)(nil)
