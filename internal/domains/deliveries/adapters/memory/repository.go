package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps deliveries in memory, useful for tests and dev fallbacks.
type Repository struct {
	mu            sync.RWMutex
	byTransaction map[uuid.UUID]*domain.Delivery
}

func NewRepository() *Repository {
	return &Repository{byTransaction: map[uuid.UUID]*domain.Delivery{}}
}

func (r *Repository) Save(_ context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTransaction[delivery.TransactionID]; ok {
		return nil, ports.ErrAlreadyExists
	}
	clone := *delivery
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}
	r.byTransaction[clone.TransactionID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByTransactionID(_ context.Context, transactionID uuid.UUID) (*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	delivery, ok := r.byTransaction[transactionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *delivery
	return &clone, nil
}
