package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	SendMessage(ctx context.Context, key string, message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer returns a producer for topic, or a log-only producer when no
// brokers are configured or the first broker cannot be reached.
func NewProducer(brokers []string, topic string) Producer {
	if len(brokers) == 0 {
		logrus.Info("Kafka brokers not configured, overlay events will only be logged")
		return &mockProducer{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logrus.Infof("Kafka producer configured for brokers: %v", brokers)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		logrus.Warnf("Kafka connection failed: %v", err)
		logrus.Warn("Using mock producer instead")
		writer.Close()
		return &mockProducer{}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.Infof("Could not create topic (might already exist): %v", err)
	} else {
		logrus.Infof("Created topic: %s", topic)
	}

	logrus.Infof("Connected to Kafka at %v", brokers)
	return &kafkaProducer{writer: writer, topic: topic}
}

func (p *kafkaProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: messageBytes,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	logrus.WithField("key", key).Debugf("Message sent to topic: %s", p.topic)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// mockProducer stands in when Kafka is disabled or unreachable.
type mockProducer struct{}

func (m *mockProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	logrus.WithField("key", key).Debugf("MOCK: overlay event %+v", message)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
