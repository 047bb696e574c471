// Package metrics provides internal Prometheus metrics collection for
// the provider layer. It is internal and must not be imported outside
// this module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector tracks outbound LLM provider call outcomes: request
// counts by outcome, latency, and token usage.
type Collector struct {
	requestsTotal *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	tokensTotal   *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector registers the provider metrics under namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Total number of outbound LLM provider requests by outcome.",
			},
			[]string{"provider", "outcome"},
		),
		requestLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_latency_seconds",
				Help:      "LLM provider call latency in seconds.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
		tokensTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_tokens_total",
				Help:      "Total tokens consumed per provider, by kind (prompt/completion).",
			},
			[]string{"provider", "kind"},
		),
	}
	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))
	return c
}

// NewNop returns a Collector that registers nothing and records
// nothing, for tests and adapters constructed without a registry.
func NewNop() *Collector {
	return &Collector{logger: zap.NewNop()}
}

// RecordProviderRequest records the outcome of one provider call. A
// nil-receiver-safe no-op when the collector wasn't wired to a
// registry (NewNop).
func (c *Collector) RecordProviderRequest(provider, outcome string, latency time.Duration, promptTokens, completionTokens int) {
	if c == nil || c.requestsTotal == nil {
		return
	}
	c.requestsTotal.WithLabelValues(provider, outcome).Inc()
	c.requestLatency.WithLabelValues(provider).Observe(latency.Seconds())
	if promptTokens > 0 {
		c.tokensTotal.WithLabelValues(provider, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		c.tokensTotal.WithLabelValues(provider, "completion").Add(float64(completionTokens))
	}
}
