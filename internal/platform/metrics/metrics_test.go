package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementValidation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementValidation(true, "single")
	m.IncrementValidation(false, "single")
	m.IncrementValidation(false, "single")
	m.IncrementValidation(true, "bulk")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("valid", "single")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues("invalid", "single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("valid", "bulk")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementValidation(true, "single")
		m.ObserveBulkRows(3)
		m.ObserveRequestLatency("/health", http.MethodGet, "200", time.Millisecond)
	})
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	m := New(nil)
	m.IncrementValidation(true, "single")
	m.ObserveBulkRows(10)
	m.ObserveRequestLatency("/api/validate", http.MethodPost, "200", 2*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "validarfc_validations_total")
	assert.Contains(t, body, "validarfc_bulk_rows")
	assert.Contains(t, body, "validarfc_http_request_duration_seconds")
}
