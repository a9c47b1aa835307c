package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/gif-overlay/internal/pkg/metrics"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/storage"
)

// StagingJanitor removes staged uploads that outlived their request, e.g.
// after a crash between staging and cleanup.
type StagingJanitor struct {
	storage  storage.FileStorage
	metrics  *metrics.Metrics
	interval time.Duration
	maxAge   time.Duration
}

func NewStagingJanitor(storage storage.FileStorage, metrics *metrics.Metrics, interval, maxAge time.Duration) *StagingJanitor {
	return &StagingJanitor{
		storage:  storage,
		metrics:  metrics,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start sweeps once immediately, then on every tick until ctx is done.
func (w *StagingJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.WithFields(logrus.Fields{
		"interval": w.interval.String(),
		"max_age":  w.maxAge.String(),
	}).Info("Staging janitor started")

	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Staging janitor stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *StagingJanitor) sweep() int {
	removed, err := w.storage.Sweep(w.maxAge)
	w.metrics.RecordSwept(removed)

	if err != nil {
		logrus.Errorf("Failed to sweep staged files: %v", err)
	}
	if removed > 0 {
		logrus.Warnf("Removed %d orphaned staged files", removed)
	}
	return removed
}
