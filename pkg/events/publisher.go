package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// TransitionEvent describes one committed order status change. It is the
// integration surface for downstream consumers (bot service, CMS sync):
// events are emitted after the transition commits and are best-effort.
type TransitionEvent struct {
	OrderID    string         `json:"order_id"`
	StoreID    string         `json:"store_id"`
	CustomerID string         `json:"customer_id"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Publisher emits committed transition events.
type Publisher interface {
	Publish(ctx context.Context, event TransitionEvent) error
}

// KafkaPublisher writes transition events to a Kafka topic, keyed by order
// id so per-order ordering survives partitioning.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event TransitionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transition event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: msg,
		Time:  event.OccurredAt,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
