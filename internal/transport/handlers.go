package transport

import (
	"github.com/ds124wfegd/gif-overlay/internal/pkg/metrics"
	"github.com/ds124wfegd/gif-overlay/internal/service"
)

type OverlayHandler struct {
	service        service.OverlayService
	metrics        *metrics.Metrics
	maxUploadBytes int64
}

func NewOverlayHandler(service service.OverlayService, metrics *metrics.Metrics, maxUploadBytes int64) *OverlayHandler {
	return &OverlayHandler{
		service:        service,
		metrics:        metrics,
		maxUploadBytes: maxUploadBytes,
	}
}
