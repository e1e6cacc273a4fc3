package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.CatalogLoaded(true)
	m.CatalogLoaded(true)
	m.CatalogLoaded(false)
	m.CheckoutFinished(OutcomeEmptyCart)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.catalogLoads.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogLoads.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkouts.WithLabelValues(OutcomeEmptyCart)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CatalogLoaded(true)
		m.CheckoutFinished(OutcomeSuccess)
		m.ObserveUpstream("order", 200, time.Millisecond)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveUpstream("inventory", 200, 20*time.Millisecond)
	m.ObserveUpstream("order", 0, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `storefront_upstream_request_duration_seconds_count{service="inventory",status="200"} 1`)
	assert.Contains(t, string(body), `storefront_upstream_request_duration_seconds_count{service="order",status="error"} 1`)
}
