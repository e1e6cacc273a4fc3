package cart

import (
	"sync"
	"time"

	"github.com/wichananm65/chaosshop-storefront/internal/product"
)

// Cart is the ordered list of products a shopper selected. Adding the same
// product twice yields two entries; insertion order is display order.
// The zero value is an empty cart ready to use.
type Cart struct {
	mu      sync.RWMutex
	items   []product.Product
	touched time.Time
}

func New() *Cart {
	return &Cart{touched: time.Now()}
}

// Add appends p. Stock is not checked.
func (c *Cart) Add(p product.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, p)
	c.touched = time.Now()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.touched = time.Now()
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []product.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]product.Product, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of entries, duplicates included.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cart) lastTouched() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.touched
}
