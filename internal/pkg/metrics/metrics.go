package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gif_overlay"

// Outcome labels for overlay requests.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeUploadFailed = "upload_failed"
	OutcomeFailed       = "failed"
)

// Metrics records pipeline counters. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	uploadDuration  prometheus.Histogram
	cleanupFailures prometheus.Counter
	sweptFiles      prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry allows tests to provide a dedicated registry.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Overlay requests by outcome",
		}, []string{"outcome"}),
		uploadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_upload_duration_seconds",
			Help:      "Duration of uploads to the remote provider",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		cleanupFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_failures_total",
			Help:      "Staged files that could not be deleted after upload",
		}),
		sweptFiles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swept_files_total",
			Help:      "Orphaned staged files removed by the janitor",
		}),
	}
}

func (m *Metrics) RecordRequest(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpload(d time.Duration) {
	if m == nil {
		return
	}
	m.uploadDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordCleanupFailure() {
	if m == nil {
		return
	}
	m.cleanupFailures.Inc()
}

func (m *Metrics) RecordSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sweptFiles.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
