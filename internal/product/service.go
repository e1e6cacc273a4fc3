package product

import (
	"context"

	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"github.com/wichananm65/chaosshop-storefront/internal/metrics"
	"go.uber.org/zap"
)

type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

// Load fetches the catalog once. Any failure is reported as the fixed
// LoadFailedMessage; nothing is retried or cached between loads.
func (s *Service) Load(ctx context.Context) Listing {
	products, err := s.repo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load products", zap.Error(err))
		s.metrics.CatalogLoaded(false)
		return Listing{Products: []Product{}, Error: LoadFailedMessage}
	}

	s.metrics.CatalogLoaded(true)
	return Listing{Products: products, Count: len(products)}
}
