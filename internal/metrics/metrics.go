// metrics.go - Prometheus metrics for the AI pipeline

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports on /metrics.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec
	ResolutionTier   *prometheus.CounterVec
	ReceiptOutcome   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	LoanQueries      *prometheus.CounterVec
}

var (
	instance        *Metrics
	once            sync.Once
	defaultRegistry = prometheus.DefaultRegisterer
)

// Get returns the process-wide metrics, registering them on first use.
func Get() *Metrics {
	once.Do(func() {
		factory := promauto.With(defaultRegistry)
		instance = &Metrics{
			ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "sakhi_provider_requests_total",
				Help: "Provider attempts by provider and outcome",
			}, []string{"provider", "outcome"}),
			ProviderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "sakhi_provider_request_duration_seconds",
				Help:    "Time taken by a single provider attempt",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15},
			}, []string{"provider"}),
			ResolutionTier: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "sakhi_intent_resolution_total",
				Help: "Intent resolutions by the tier that produced the answer",
			}, []string{"tier", "intent"}),
			ReceiptOutcome: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "sakhi_receipt_extractions_total",
				Help: "Receipt extractions by source and resulting intent",
			}, []string{"source", "intent"}),
			RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "sakhi_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			}, []string{"route", "status"}),
			LoanQueries: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "sakhi_loan_queries_total",
				Help: "Loan scheme questions by the source of the answer",
			}, []string{"source"}),
		}
	})
	return instance
}

// ResetForTesting swaps in a fresh registry so tests can read counters in isolation.
func ResetForTesting() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	defaultRegistry = reg
	instance = nil
	once = sync.Once{}
	return reg
}
