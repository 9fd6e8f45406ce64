// Package kafka publishes committed state changes to Kafka topics for
// downstream consumers (analytics, archival, external trackers).
package kafka

import (
	"context"
	"encoding/json"

	"dispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Publisher writes order-changed and driver-location events to their own
// topics, keyed by entity id so per-entity ordering survives partitioning.
type Publisher struct {
	orders    *kafka.Writer
	locations *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers and topics.
func NewPublisher(brokers []string, ordersTopic, locationsTopic string) *Publisher {
	return &Publisher{
		orders: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  brokers,
			Topic:    ordersTopic,
			Balancer: &kafka.LeastBytes{},
		}),
		locations: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  brokers,
			Topic:    locationsTopic,
			Balancer: &kafka.LeastBytes{},
		}),
	}
}

// PublishOrderChanged writes a committed order transition.
func (p *Publisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.orders.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
}

// PublishDriverLocation writes a committed location fix.
func (p *Publisher) PublishDriverLocation(ctx context.Context, event ports.DriverLocationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.locations.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DriverID),
		Value: value,
	})
}

// Close flushes and closes both writers.
func (p *Publisher) Close() error {
	if err := p.orders.Close(); err != nil {
		_ = p.locations.Close()
		return err
	}
	return p.locations.Close()
}
