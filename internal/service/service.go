package service

import (
	"context"
	"mime/multipart"

	"github.com/ds124wfegd/gif-overlay/internal/entity"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/cloudinary"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/kafka"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/metrics"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/storage"
)

type OverlayService interface {
	Process(ctx context.Context, file *multipart.FileHeader, req entity.OverlayRequest) (*entity.OverlayResult, error)
}

// URLBuilder turns an asset id and overlay parameters into a retrieval URL
// without any I/O.
type URLBuilder interface {
	BuildURL(assetID string, d entity.TransformationDescriptor) (string, error)
}

type overlayService struct {
	storage  storage.FileStorage
	uploader cloudinary.Uploader
	builder  URLBuilder
	producer kafka.Producer
	metrics  *metrics.Metrics
}

func NewOverlayService(storage storage.FileStorage, uploader cloudinary.Uploader, builder URLBuilder, producer kafka.Producer, metrics *metrics.Metrics) OverlayService {
	return &overlayService{
		storage:  storage,
		uploader: uploader,
		builder:  builder,
		producer: producer,
		metrics:  metrics,
	}
}
