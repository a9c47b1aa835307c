package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProducerWithoutBrokers(t *testing.T) {
	p := NewProducer(nil, "gif-overlay-events")

	_, isMock := p.(*mockProducer)
	assert.True(t, isMock)
	assert.NoError(t, p.SendMessage(context.Background(), "abc123", map[string]string{"assetId": "abc123"}))
	assert.NoError(t, p.Close())
}

func TestNewProducerUnreachableBroker(t *testing.T) {
	// port 1 on loopback refuses connections immediately
	p := NewProducer([]string{"127.0.0.1:1"}, "gif-overlay-events")

	_, isMock := p.(*mockProducer)
	assert.True(t, isMock)
}
