package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
)

// PrometheusConfig configures the Prometheus observer.
type PrometheusConfig struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for the latency histogram (in seconds)
	LatencyBuckets []float64
}

// DefaultPrometheusConfig returns default Prometheus configuration.
func DefaultPrometheusConfig() PrometheusConfig {
	return PrometheusConfig{
		LatencyBuckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}
}

// Prometheus exports request counts and latency.
type Prometheus struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them.
func NewPrometheus(cfg PrometheusConfig) *Prometheus {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultPrometheusConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	p := &Prometheus{
		registry: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "textformatter",
				Name:      "requests_total",
				Help:      "Total number of format requests by outcome",
			},
			[]string{"outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "textformatter",
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a format request",
				Buckets:   cfg.LatencyBuckets,
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(p.requests, p.latency)

	// Pre-create label values so every outcome is exported from the start.
	for _, o := range domain.Outcomes() {
		p.requests.WithLabelValues(string(o))
	}

	return p
}

// Observe implements ports.Observer.
func (p *Prometheus) Observe(outcome domain.Outcome, elapsed time.Duration) {
	p.requests.WithLabelValues(string(outcome)).Inc()
	p.latency.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
