package product

import (
	"context"
	"sync"
)

// Repository is the read side of the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// running the storefront without an inventory service.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out, nil
}
