package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/order/dto"
)

type Repository interface {
	// Create stores the order with its items and assigns the next id.
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	// FindAll returns matching orders newest first.
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	// UpdateStatus fails with InvalidTransition when the stored status is not from.
	UpdateStatus(ctx context.Context, id uint64, from, to model.OrderStatus, at time.Time) error
}
