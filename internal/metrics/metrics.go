// Package metrics exposes Prometheus counters and histograms for indexing and search.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds an isolated registry and the vecsearch collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	documentsTotal *prometheus.CounterVec
	fieldErrors    *prometheus.CounterVec
	queriesTotal   *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
}

// New creates a registry with Go and process collectors plus the vecsearch metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		Registry: registry,
		documentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecsearch",
			Name:      "documents_total",
			Help:      "Documents processed by the indexer, by outcome.",
		}, []string{"outcome"}),
		fieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecsearch",
			Name:      "field_errors_total",
			Help:      "Vector field values that failed to index, by reason.",
		}, []string{"reason"}),
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecsearch",
			Name:      "queries_total",
			Help:      "Queries executed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vecsearch",
			Name:      "search_duration_seconds",
			Help:      "Search latency in seconds, by query kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	registry.MustRegister(
		m.documentsTotal,
		m.fieldErrors,
		m.queriesTotal,
		m.searchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// DocumentIndexed counts a document outcome ("indexed", "rejected", "deleted").
func (m *Metrics) DocumentIndexed(outcome string) {
	if m == nil {
		return
	}
	m.documentsTotal.WithLabelValues(outcome).Inc()
}

// FieldError counts a field-level indexing failure ("malformed", "dimension_mismatch", ...).
func (m *Metrics) FieldError(reason string) {
	if m == nil {
		return
	}
	m.fieldErrors.WithLabelValues(reason).Inc()
}

// QueryExecuted counts a query and records its duration.
// Example: defer m.QueryExecuted("range", "ok", time.Now())
func (m *Metrics) QueryExecuted(kind, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(kind, outcome).Inc()
	m.searchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
