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

func TestRecorders(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.RecordRequest(OutcomeSuccess)
	m.RecordRequest(OutcomeSuccess)
	m.RecordRequest(OutcomeUploadFailed)
	m.RecordCleanupFailure()
	m.RecordSwept(3)
	m.RecordSwept(0)
	m.ObserveUpload(250 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(OutcomeUploadFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cleanupFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sweptFiles))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRequest(OutcomeFailed)
		m.RecordCleanupFailure()
		m.RecordSwept(1)
		m.ObserveUpload(time.Second)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordRequest(OutcomeInvalid)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gif_overlay_requests_total{outcome="invalid"} 1`)
}
