package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Validation outcomes by outcome ("valid", "invalid") and source ("single", "bulk")
	Validations *prometheus.CounterVec

	// Candidates per bulk upload
	BulkRows prometheus.Histogram

	// HTTP latency by matched route, method and status
	RequestLatency *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates and registers all metrics on reg. A nil reg uses a fresh
// registry, which keeps tests from colliding on the default one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "validarfc_validations_total",
			Help: "Total RFC validations by outcome and source",
		}, []string{"outcome", "source"}),

		BulkRows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "validarfc_bulk_rows",
			Help:    "Number of candidates per bulk validation request",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 2500, 5000},
		}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "validarfc_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"route", "method", "status"}),

		gatherer: reg,
	}
}

// IncrementValidation records one validation outcome.
func (m *Metrics) IncrementValidation(valid bool, source string) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.Validations.WithLabelValues(outcome, source).Inc()
}

// ObserveBulkRows records the size of a bulk upload.
func (m *Metrics) ObserveBulkRows(n int) {
	if m != nil {
		m.BulkRows.Observe(float64(n))
	}
}

// ObserveRequestLatency records the duration of one HTTP request.
func (m *Metrics) ObserveRequestLatency(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
