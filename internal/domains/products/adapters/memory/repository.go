package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/eshop-labs/checkout-api/internal/domains/products/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps products in memory, useful for tests and dev fallbacks.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}, nextID: 1}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	if clone.ID == 0 {
		clone.ID = r.nextID
		r.nextID++
	} else if clone.ID >= r.nextID {
		r.nextID = clone.ID + 1
	}
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Repository) DecrementStock(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if product.Stock < 1 {
		return ports.ErrOutOfStock
	}
	product.Stock--
	return nil
}
