package publisher

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/observability"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// MessageWriter is satisfied by *broker.KafkaProducer.
type MessageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
}

type OrderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	Order          *model.Order      `json:"order"`
	PreviousStatus model.OrderStatus `json:"previous_status,omitempty"`
}

type KafkaPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, now: time.Now}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, o *model.Order) error {
	return p.publish(ctx, EventOrderPlaced, OrderPayload{Order: o})
}

func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, o *model.Order, from model.OrderStatus) error {
	return p.publish(ctx, EventOrderStatusChanged, OrderPayload{Order: o, PreviousStatus: from})
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType string, payload OrderPayload) error {
	event := OrderEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: p.now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// keyed by order so every event of one order lands on the same partition
	return p.writer.WriteMessage(ctx, kafka.Message{
		Key:     []byte(strconv.FormatUint(payload.Order.ID, 10)),
		Value:   value,
		Headers: observability.InjectKafkaHeaders(ctx),
	})
}

// Noop drops every event. Used when Kafka is disabled.
type Noop struct{}

func (Noop) PublishOrderPlaced(context.Context, *model.Order) error { return nil }

func (Noop) PublishOrderStatusChanged(context.Context, *model.Order, model.OrderStatus) error {
	return nil
}
