// Package metrics exposes prometheus counters for the scrape pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for outbound fetches and cache lookups.
// All methods are nil-safe so components can run without a recorder.
type Metrics struct {
	registry *prometheus.Registry

	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	cacheTotal    *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "npblive_fetch_requests_total",
			Help: "Outbound fetches to the origin site by outcome.",
		}, []string{"page", "outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "npblive_fetch_duration_seconds",
			Help:    "Outbound fetch latency including the courtesy delay.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "npblive_cache_lookups_total",
			Help: "Cache lookups by result.",
		}, []string{"page", "status"}),
	}

	registry.MustRegister(m.fetchTotal, m.fetchDuration, m.cacheTotal)
	return m
}

// RecordFetch counts one outbound fetch and its latency.
func (m *Metrics) RecordFetch(page string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.fetchTotal.WithLabelValues(page, outcome).Inc()
	m.fetchDuration.Observe(seconds)
}

// RecordCache counts one cache lookup result ("hit" or "miss").
func (m *Metrics) RecordCache(page, status string) {
	if m == nil {
		return
	}
	m.cacheTotal.WithLabelValues(page, status).Inc()
}

// Handler serves the registry in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
