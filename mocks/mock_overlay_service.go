package mocks

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"github.com/ds124wfegd/gif-overlay/internal/entity"
)

// MockOverlayService is a mock implementation of service.OverlayService.
type MockOverlayService struct {
	mock.Mock
}

func (m *MockOverlayService) Process(ctx context.Context, file *multipart.FileHeader, req entity.OverlayRequest) (*entity.OverlayResult, error) {
	args := m.Called(ctx, file, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OverlayResult), args.Error(1)
}
