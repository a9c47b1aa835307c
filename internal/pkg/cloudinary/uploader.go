package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"time"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/ds124wfegd/gif-overlay/internal/entity"
	"github.com/sirupsen/logrus"
)

const (
	resourceType = "image"
	format       = "gif"

	defaultUploadTimeout = 60 * time.Second
)

// Uploader pushes a staged file to the remote provider. Each call makes
// exactly one attempt; retries are the caller's decision.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*entity.RemoteAsset, error)
}

// Config is read once at startup and never mutated.
type Config struct {
	CloudName     string
	APIKey        string
	APISecret     string
	Folder        string
	UploadTimeout time.Duration
}

// assetAPI is the part of the SDK upload API the adapter needs.
type assetAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

type cloudinaryUploader struct {
	api     assetAPI
	folder  string
	timeout time.Duration
}

func NewUploader(cfg Config) (Uploader, error) {
	client, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}

	logrus.WithField("cloud_name", cfg.CloudName).Info("Cloudinary uploader configured")
	return newUploader(&client.Upload, cfg), nil
}

func newUploader(api assetAPI, cfg Config) *cloudinaryUploader {
	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	return &cloudinaryUploader{api: api, folder: cfg.Folder, timeout: timeout}
}

// Upload stores localPath as a GIF image resource. Client cancellation does
// not abort an upload already in flight; the upload timeout still applies.
func (u *cloudinaryUploader) Upload(ctx context.Context, localPath string) (*entity.RemoteAsset, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer cancel()

	start := time.Now()
	result, err := u.api.Upload(ctx, localPath, uploader.UploadParams{
		ResourceType: resourceType,
		Format:       format,
		Folder:       u.folder,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", entity.ErrRemoteUploadFailed, u.timeout)
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrRemoteUploadFailed, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty response from provider", entity.ErrRemoteUploadFailed)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", entity.ErrRemoteUploadFailed, result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("%w: provider returned no asset id", entity.ErrRemoteUploadFailed)
	}

	logrus.WithFields(logrus.Fields{
		"asset_id": result.PublicID,
		"duration": time.Since(start),
	}).Info("Uploaded asset to Cloudinary")

	return &entity.RemoteAsset{
		AssetID:      result.PublicID,
		CanonicalURL: result.SecureURL,
	}, nil
}
