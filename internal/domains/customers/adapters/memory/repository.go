package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps customers in memory, useful for tests and dev fallbacks.
type Repository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*domain.Customer
	byEmail map[string]uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{
		byID:    map[uuid.UUID]*domain.Customer{},
		byEmail: map[string]uuid.UUID{},
	}
}

func (r *Repository) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(customer.Email))
	if existing, ok := r.byEmail[email]; ok && existing != customer.ID {
		return nil, ports.ErrDuplicateEmail
	}
	clone := *customer
	clone.Email = email
	r.byID[clone.ID] = &clone
	r.byEmail[email] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *customer
	return &clone, nil
}
