package order

import (
	"context"
	"sync"

	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"github.com/wichananm65/chaosshop-storefront/internal/metrics"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
	"go.uber.org/zap"
)

// CartStore is the part of the cart service checkout needs.
type CartStore interface {
	GetCart(sessionID string) ([]product.Product, error)
	ClearCart(sessionID string) error
}

// Service runs checkouts: one submission per call, at most one in flight
// per session.
type Service struct {
	carts     CartStore
	submitter Submitter
	metrics   *metrics.Metrics

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewService(carts CartStore, submitter Submitter, m *metrics.Metrics) *Service {
	return &Service{
		carts:     carts,
		submitter: submitter,
		metrics:   m,
		pending:   make(map[string]struct{}),
	}
}

// Checkout submits the first product of the session's cart. A non-nil error
// means nothing was sent; a failed submission comes back as a Result with
// OK false. The cart is cleared only when the order service accepted.
func (s *Service) Checkout(ctx context.Context, sessionID string, form Form) (Result, error) {
	log := logger.FromContext(ctx).With(zap.String("session_id", sessionID))

	if !s.begin(sessionID) {
		s.metrics.CheckoutFinished(metrics.OutcomeInProgress)
		return Result{}, ErrCheckoutInProgress
	}
	defer s.end(sessionID)

	items, err := s.carts.GetCart(sessionID)
	if err != nil {
		return Result{}, err
	}
	req, err := BuildRequest(items, form)
	if err != nil {
		s.metrics.CheckoutFinished(metrics.OutcomeEmptyCart)
		return Result{}, err
	}
	if dropped := len(items) - req.Quantity; dropped > 0 {
		log.Warn("only the first product is ordered", zap.String("product_name", req.ProductName), zap.Int("dropped_items", dropped))
	}

	res := s.submitter.Submit(ctx, req, form.Scenario)
	if !res.OK {
		s.metrics.CheckoutFinished(metrics.OutcomeFailed)
		log.Warn("checkout failed", zap.Int("status", res.StatusCode), zap.String("message", res.Message))
		return res, nil
	}

	if err := s.carts.ClearCart(sessionID); err != nil {
		log.Error("failed to clear cart after checkout", zap.Error(err))
	}
	s.metrics.CheckoutFinished(metrics.OutcomeSuccess)
	log.Info("order placed", zap.String("product_name", req.ProductName), zap.Int("quantity", req.Quantity))
	return res, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[sessionID]; busy {
		return false
	}
	s.pending[sessionID] = struct{}{}
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, sessionID)
}
