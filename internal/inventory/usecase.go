package inventory

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type UseCase interface {
	// Reserve validates every line against fresh catalog reads and decrements
	// stock for all of them, or for none.
	Reserve(ctx context.Context, lines []model.CartItem) (*dto.Reservation, error)
	// Release gives the stock of a reservation back.
	Release(ctx context.Context, res *dto.Reservation) error
}
