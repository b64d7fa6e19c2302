// Package kafkaout publishes order lifecycle events to Kafka.
//
// Events are JSON envelopes keyed by order id so all events for one order
// land in the same partition. Publishing is best effort: the producer logs
// failures and callers never fail a business operation over a lost event.
package kafkaout

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types carried in the envelope.
const (
	EventOrderCreated = "OrderCreated"
	EventOrderShipped = "OrderShipped"
)

const eventVersion = 1

// envelope is the wire format for order events.
type envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// orderPayload is the payload for both order events.
type orderPayload struct {
	OrderID    string   `json:"order_id"`
	CustomerID string   `json:"customer_id"`
	Status     string   `json:"status"`
	ProductIDs []string `json:"product_ids"`
}

// Producer publishes order events to a single Kafka topic.
// Implements ports.OrderEventPublisher.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a producer writing to the given brokers and topic.
// Messages are hashed by key so one order's events stay ordered within
// a partition.
func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		logger: logger.With("component", "order_event_producer"),
	}
}

// PublishOrderCreated announces a newly created order.
func (p *Producer) PublishOrderCreated(ctx context.Context, aggregate *order.Order) error {
	return p.publish(ctx, EventOrderCreated, aggregate)
}

// PublishOrderShipped announces a successful shipment.
func (p *Producer) PublishOrderShipped(ctx context.Context, aggregate *order.Order) error {
	return p.publish(ctx, EventOrderShipped, aggregate)
}

// Close flushes buffered messages and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func (p *Producer) publish(ctx context.Context, eventType string, aggregate *order.Order) error {
	productIDs := aggregate.ProductIDs()
	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.String())
	}

	payload, err := json.Marshal(orderPayload{
		OrderID:    aggregate.ID().String(),
		CustomerID: aggregate.CustomerID().String(),
		Status:     aggregate.Status().String(),
		ProductIDs: ids,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to encode order event", "event_type", eventType, "error", err)
		return err
	}

	value, err := json.Marshal(envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: eventVersion,
		OccurredAt:   time.Now().UTC(),
		Producer:     "fulfillment-api",
		Payload:      payload,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to encode order event", "event_type", eventType, "error", err)
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(aggregate.ID().String()),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish order event",
			"event_type", eventType, "order_id", aggregate.ID().String(), "error", err)
		return err
	}

	return nil
}
