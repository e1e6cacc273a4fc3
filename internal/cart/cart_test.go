package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
)

func TestCart_AddCountsEveryEntry(t *testing.T) {
	faker := gofakeit.New(42)
	c := New()

	n := faker.IntRange(5, 20)
	dup := product.Product{ID: 1, ProductName: faker.ProductName(), Quantity: 1}
	for i := 0; i < n; i++ {
		c.Add(dup)
	}
	assert.Equal(t, n, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Items())
}

func TestCart_ItemsIsACopy(t *testing.T) {
	var c Cart
	c.Add(product.Product{ID: 1, ProductName: "Laptop"})

	items := c.Items()
	items[0].ProductName = "changed"
	assert.Equal(t, "Laptop", c.Items()[0].ProductName)
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Add(product.Product{ID: i, ProductName: fmt.Sprintf("p%d", i)})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}

func TestService_RequiresSession(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.AddToCart("", product.Product{})
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = svc.GetCart("")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, svc.ClearCart(""), ErrNoSession)
}

func TestRepository_Prune(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.AddToCart("old", product.Product{ID: 1})
	require.NoError(t, err)

	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(2 * time.Millisecond)
	_, err = repo.AddToCart("fresh", product.Product{ID: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.Prune(cutoff))

	items, err := repo.GetCart("old")
	require.NoError(t, err)
	assert.Empty(t, items)
	items, err = repo.GetCart("fresh")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestService_RunJanitor(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	_, err := svc.AddToCart("idle", product.Product{ID: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunJanitor(ctx, time.Millisecond, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		items, _ := svc.GetCart("idle")
		return len(items) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
