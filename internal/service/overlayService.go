package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/ds124wfegd/gif-overlay/internal/entity"
	"github.com/sirupsen/logrus"
)

// Process stages the upload, pushes it to the provider and builds the
// overlay URL. The staged file is removed once the upload returns, whatever
// its outcome.
func (s *overlayService) Process(ctx context.Context, file *multipart.FileHeader, req entity.OverlayRequest) (*entity.OverlayResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	stagedPath, err := s.storage.Stage(file.Filename, src)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	log := logrus.WithFields(logrus.Fields{
		"path": stagedPath,
		"text": req.Text,
	})
	log.Info("Processing GIF with text overlay")

	start := time.Now()
	asset, err := s.uploader.Upload(ctx, stagedPath)
	s.metrics.ObserveUpload(time.Since(start))

	s.cleanup(stagedPath)

	if err != nil {
		log.WithError(err).Error("Remote upload failed")
		return nil, err
	}

	descriptor := req.Descriptor()
	transformedURL, err := s.builder.BuildURL(asset.AssetID, descriptor)
	if err != nil {
		log.WithError(err).WithField("asset_id", asset.AssetID).Error("Failed to build overlay URL")
		return nil, fmt.Errorf("%w: %w", entity.ErrProcessingFailed, err)
	}

	result := &entity.OverlayResult{
		AssetID:        asset.AssetID,
		TransformedURL: transformedURL,
		OriginalURL:    asset.CanonicalURL,
		Parameters:     descriptor,
	}

	s.publish(ctx, asset, result)

	log.WithField("asset_id", asset.AssetID).Info("GIF processed with text overlay")
	return result, nil
}

// cleanup never fails the request; a leftover file is picked up by the janitor.
func (s *overlayService) cleanup(path string) {
	if err := s.storage.Remove(path); err != nil {
		s.metrics.RecordCleanupFailure()
		logrus.WithError(fmt.Errorf("%w: %v", entity.ErrLocalCleanupFailed, err)).
			WithField("path", path).
			Error("Error deleting staged file")
	}
}

func (s *overlayService) publish(ctx context.Context, asset *entity.RemoteAsset, result *entity.OverlayResult) {
	event := entity.OverlayEvent{
		AssetID:     asset.AssetID,
		URL:         result.TransformedURL,
		OriginalURL: result.OriginalURL,
		Parameters:  result.Parameters,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.producer.SendMessage(context.WithoutCancel(ctx), asset.AssetID, event); err != nil {
		logrus.WithError(err).WithField("asset_id", asset.AssetID).Warn("Failed to publish overlay event")
	}
}
