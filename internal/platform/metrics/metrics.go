package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	StatusChecks     *prometheus.CounterVec
	ValidationErrors prometheus.Counter
	EndpointLatency  *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StatusChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crsc_status_checks_total",
			Help: "Total number of status check requests answered, labeled by outcome",
		}, []string{"outcome"}),
		ValidationErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "crsc_validation_errors_total",
			Help: "Total number of individual validation messages returned",
		}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crsc_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementStatusChecks counts one answered request with its outcome label.
func (m *Metrics) IncrementStatusChecks(outcome string) {
	m.StatusChecks.WithLabelValues(outcome).Inc()
}

// AddValidationErrors adds the number of messages in a rejected request.
func (m *Metrics) AddValidationErrors(count int) {
	if count <= 0 {
		return
	}
	m.ValidationErrors.Add(float64(count))
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
