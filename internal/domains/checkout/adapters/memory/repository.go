package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps transactions in memory with the same compare-and-swap
// semantics as the Postgres adapter, useful for tests and dev fallbacks.
type Repository struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
}

func NewRepository() *Repository {
	return &Repository{transactions: map[uuid.UUID]*domain.Transaction{}}
}

func (r *Repository) Save(_ context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.transactions[transaction.ID]; ok {
		// Status is owned by CompareAndSwapStatus; keep the stored value.
		clone := *transaction
		clone.Status = existing.Status
		r.transactions[transaction.ID] = &clone
		result := clone
		return &result, nil
	}
	clone := *transaction
	r.transactions[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *transaction
	return &clone, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Transaction
	for _, transaction := range r.transactions {
		if filter.Status != nil && transaction.Status != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && transaction.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.From != nil && transaction.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && transaction.CreatedAt.After(*filter.To) {
			continue
		}
		clone := *transaction
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *Repository) SetGatewayID(_ context.Context, id uuid.UUID, gatewayID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return ports.ErrNotFound
	}
	transaction.GatewayID = gatewayID
	return nil
}

func (r *Repository) CompareAndSwapStatus(_ context.Context, id uuid.UUID, from, to domain.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return false, ports.ErrNotFound
	}
	if transaction.Status != from {
		return false, nil
	}
	transaction.Status = to
	return true, nil
}
