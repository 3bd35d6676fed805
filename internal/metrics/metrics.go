// Package metrics exposes Prometheus instruments for the list fetches.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the fetch instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg prometheus.Gatherer

	FetchRequests prometheus.Counter
	FetchStale    prometheus.Counter
	FetchFailures *prometheus.CounterVec
	FetchDuration prometheus.Histogram
}

// New registers the instruments on reg. Pass prometheus.NewRegistry() in tests to keep
// them isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		FetchRequests: f.NewCounter(prometheus.CounterOpts{
			Name: "usagers_fetch_requests_total",
			Help: "List requests issued",
		}),
		FetchStale: f.NewCounter(prometheus.CounterOpts{
			Name: "usagers_fetch_stale_total",
			Help: "List responses discarded because a newer request was issued",
		}),
		FetchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "usagers_fetch_failures_total",
			Help: "List requests that failed, by error kind",
		}, []string{"kind"}),
		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "usagers_fetch_duration_seconds",
			Help:    "List request latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) RequestIssued() {
	if m == nil {
		return
	}
	m.FetchRequests.Inc()
}

func (m *Metrics) StaleDiscarded() {
	if m == nil {
		return
	}
	m.FetchStale.Inc()
}

func (m *Metrics) Failed(kind string) {
	if m == nil {
		return
	}
	m.FetchFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) Observe(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
