package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ds124wfegd/gif-overlay/internal/entity"
)

// MockUploader is a mock implementation of cloudinary.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, localPath string) (*entity.RemoteAsset, error) {
	args := m.Called(ctx, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RemoteAsset), args.Error(1)
}
