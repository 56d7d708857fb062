package order

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

//go:generate mockgen -source=publisher.go -destination=mock/mock_publisher.go -package=mock

// EventPublisher announces order lifecycle changes to downstream consumers.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *model.Order) error
	PublishOrderStatusChanged(ctx context.Context, o *model.Order, from model.OrderStatus) error
}
