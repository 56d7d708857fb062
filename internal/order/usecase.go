package order

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/order/dto"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, caller model.Principal, input *dto.PlaceOrderInput) (uint64, error)
	UpdateOrderStatus(ctx context.Context, caller model.Principal, id uint64, status model.OrderStatus) error

	GetOrder(ctx context.Context, caller model.Principal, id uint64) (*model.Order, error)
	GetBuyerOrders(ctx context.Context, caller model.Principal) ([]model.Order, error)
	GetSellerOrders(ctx context.Context, caller model.Principal) ([]model.Order, error)
	GetAllOrders(ctx context.Context, caller model.Principal) ([]model.Order, error)
}
