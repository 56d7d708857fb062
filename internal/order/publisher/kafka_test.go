package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessage(_ context.Context, msg kafka.Message) error {
	w.msgs = append(w.msgs, msg)
	return nil
}

func TestKafkaPublisherEnvelope(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	o := &model.Order{BaseModel: model.BaseModel{ID: 42}, Buyer: "b1", Status: model.OrderStatusConfirmed, TotalAmount: 900}
	require.NoError(t, p.PublishOrderStatusChanged(context.Background(), o, model.OrderStatusPending))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var event OrderEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, EventOrderStatusChanged, event.EventType)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, fixed, event.Timestamp)
	assert.Equal(t, model.OrderStatusPending, event.Payload.PreviousStatus)
	assert.Equal(t, uint64(42), event.Payload.Order.ID)
	assert.Equal(t, int64(900), event.Payload.Order.TotalAmount)
}

func TestKafkaPublisherPropagatesTrace(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "place")
	defer span.End()

	w := &recordingWriter{}
	o := &model.Order{BaseModel: model.BaseModel{ID: 1}}
	require.NoError(t, NewKafkaPublisher(w).PublishOrderPlaced(ctx, o))

	require.Len(t, w.msgs, 1)
	var traceparent string
	for _, h := range w.msgs[0].Headers {
		if h.Key == "traceparent" {
			traceparent = string(h.Value)
		}
	}
	assert.Contains(t, traceparent, span.SpanContext().TraceID().String())
}
