// Package metrics exposes storefront counters and upstream latency to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeFailed     = "failed"
	OutcomeEmptyCart  = "empty_cart"
	OutcomeInProgress = "in_progress"
)

// Metrics owns a private registry so tests can create as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	catalogLoads    *prometheus.CounterVec
	checkouts       *prometheus.CounterVec
	upstreamSeconds *prometheus.HistogramVec
}

// New creates and registers the storefront metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		catalogLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "catalog_loads_total",
				Help:      "Catalog loads by outcome.",
			},
			[]string{"outcome"},
		),
		checkouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "checkouts_total",
				Help:      "Checkout attempts by outcome.",
			},
			[]string{"outcome"},
		),
		upstreamSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of requests to the inventory and order services.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "status"},
		),
	}
	m.registry.MustRegister(m.catalogLoads, m.checkouts, m.upstreamSeconds)
	return m
}

// CatalogLoaded counts one catalog load.
func (m *Metrics) CatalogLoaded(ok bool) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailed
	}
	m.catalogLoads.WithLabelValues(outcome).Inc()
}

// CheckoutFinished counts one checkout attempt.
func (m *Metrics) CheckoutFinished(outcome string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records one upstream round trip. status is 0 when the
// request never produced a response.
func (m *Metrics) ObserveUpstream(service string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.upstreamSeconds.WithLabelValues(service, label).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
