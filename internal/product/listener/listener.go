package listener

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/observability"
	"github.com/fekuna/omnipos-marketplace-service/internal/product"
)

const (
	EventProductApproved = "ProductApproved"
	EventProductRejected = "ProductRejected"

	// SignatureHeader carries the hex HMAC-SHA256 of the message value.
	SignatureHeader = "x-moderation-signature"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// ModerationListener applies moderation decisions published by the back
// office. The moderator named in an event is only trusted when the message
// is signed with the shared key; unsigned or forged messages are dropped.
// Authorization then still runs against that moderator.
type ModerationListener struct {
	consumer   MessageReader
	uc         product.UseCase
	signingKey []byte
	logger     logger.ZapLogger
	backoff    time.Duration
}

func NewModerationListener(consumer MessageReader, uc product.UseCase, signingKey []byte, logger logger.ZapLogger) *ModerationListener {
	return &ModerationListener{
		consumer:   consumer,
		uc:         uc,
		signingKey: signingKey,
		logger:     logger,
		backoff:    time.Second,
	}
}

// Sign returns the SignatureHeader value for value under key.
func Sign(key, value []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(value)
	return hex.EncodeToString(mac.Sum(nil))
}

func (l *ModerationListener) verify(msg kafka.Message) bool {
	if len(l.signingKey) == 0 {
		return false
	}
	for _, h := range msg.Headers {
		if h.Key != SignatureHeader {
			continue
		}
		got, err := hex.DecodeString(string(h.Value))
		if err != nil {
			return false
		}
		mac := hmac.New(sha256.New, l.signingKey)
		mac.Write(msg.Value)
		return hmac.Equal(got, mac.Sum(nil))
	}
	return false
}

type ModerationEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Payload   ModerationPayload `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

type ModerationPayload struct {
	ProductID uint64 `json:"product_id"`
	Moderator string `json:"moderator"`
}

func (l *ModerationListener) Start(ctx context.Context) {
	l.logger.Info("Starting moderation Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping moderation Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			if !l.verify(msg) {
				l.logger.Warn("Dropping unsigned moderation event",
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
				)
				continue
			}
			l.processMessage(observability.ExtractKafkaHeaders(ctx, msg.Headers), msg.Value)
		}
	}
}

func (l *ModerationListener) processMessage(ctx context.Context, value []byte) {
	var event ModerationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal moderation event", zap.Error(err))
		return
	}

	var apply func(context.Context, model.Principal, uint64) error
	switch event.EventType {
	case EventProductApproved:
		apply = l.uc.ApproveProduct
	case EventProductRejected:
		apply = l.uc.RejectProduct
	default:
		return
	}

	ctx, span := otel.Tracer(observability.ServiceName).Start(ctx, "moderation.apply")
	defer span.End()
	span.SetAttributes(
		attribute.String("event.type", event.EventType),
		attribute.Int64("product.id", int64(event.Payload.ProductID)),
	)

	err := apply(ctx, model.Principal(event.Payload.Moderator), event.Payload.ProductID)
	if err != nil {
		span.RecordError(err)
		l.logger.Error("Failed to apply moderation event",
			zap.String("event_id", event.EventID),
			zap.Uint64("product_id", event.Payload.ProductID),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("Applied moderation event",
		zap.String("event_type", event.EventType),
		zap.Uint64("product_id", event.Payload.ProductID),
	)
}
