package inventory

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

// Repository is the part of the catalog store that owns stock.
type Repository interface {
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	DecrementStock(ctx context.Context, productID uint64, variantIndex int, qty int64) error
	IncrementStock(ctx context.Context, productID uint64, variantIndex int, qty int64) error
}

// Locker serialises work on a set of keys. Implementations acquire keys in
// the given order, so callers pass them sorted.
type Locker interface {
	Lock(ctx context.Context, keys []string) (unlock func(), err error)
}
