package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/wichananm65/chaosshop-storefront/internal/product"
)

var (
	ErrNoSession = errors.New("session id is required")
)

// Repository keeps one cart per session.
type Repository interface {
	AddToCart(sessionID string, p product.Product) ([]product.Product, error)
	GetCart(sessionID string) ([]product.Product, error)
	ClearCart(sessionID string) error
	// Prune drops carts not touched since before and reports how many.
	Prune(before time.Time) int
}

// InMemoryRepository holds carts for the lifetime of the process only.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string]*Cart)}
}

func (r *InMemoryRepository) cartFor(sessionID string) *Cart {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[sessionID]; ok {
		return c
	}
	c = New()
	r.carts[sessionID] = c
	return c
}

func (r *InMemoryRepository) AddToCart(sessionID string, p product.Product) ([]product.Product, error) {
	c := r.cartFor(sessionID)
	c.Add(p)
	return c.Items(), nil
}

// GetCart returns an empty cart for sessions that never added anything.
func (r *InMemoryRepository) GetCart(sessionID string) ([]product.Product, error) {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if !ok {
		return []product.Product{}, nil
	}
	return c.Items(), nil
}

func (r *InMemoryRepository) ClearCart(sessionID string) error {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		c.Clear()
	}
	return nil
}

func (r *InMemoryRepository) Prune(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, c := range r.carts {
		if c.lastTouched().Before(before) {
			delete(r.carts, id)
			n++
		}
	}
	return n
}
