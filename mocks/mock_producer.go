package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProducer is a mock implementation of kafka.Producer.
type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	args := m.Called(ctx, key, message)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
