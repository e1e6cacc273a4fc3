package cart

import (
	"context"
	"time"

	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
	"go.uber.org/zap"
)

// Service orchestrates cart operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddToCart(sessionID string, p product.Product) ([]product.Product, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	return s.repo.AddToCart(sessionID, p)
}

func (s *Service) GetCart(sessionID string) ([]product.Product, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	return s.repo.GetCart(sessionID)
}

// ClearCart empties a session's cart.
func (s *Service) ClearCart(sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	return s.repo.ClearCart(sessionID)
}

// PruneIdle forgets carts idle for longer than ttl.
func (s *Service) PruneIdle(ttl time.Duration) int {
	return s.repo.Prune(time.Now().Add(-ttl))
}

// RunJanitor prunes idle carts every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, ttl, interval time.Duration) {
	log := logger.FromContext(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.PruneIdle(ttl); n > 0 {
				log.Info("pruned idle carts", zap.Int("count", n))
			}
		}
	}
}
