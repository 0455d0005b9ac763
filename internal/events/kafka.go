package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/freshsense/spoilage-web/internal/domain"
)

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes completed submissions as JSON keyed by submission id
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

// Publish writes one submission event
func (p *KafkaPublisher) Publish(ctx context.Context, s domain.Submission) error {
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("events: failed to encode submission: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(s.ID),
		Value: value,
		Time:  s.CreatedAt,
		Headers: []kafka.Header{
			{Key: "outcome", Value: []byte(s.Outcome)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: failed to publish submission %s: %w", s.ID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
