package cart

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type Repository interface {
	// Get returns the buyer's lines in the order they were first added.
	Get(ctx context.Context, buyer model.Principal) ([]model.CartItem, error)
	// Add inserts the line or adds to the quantity of an existing one.
	Add(ctx context.Context, buyer model.Principal, item model.CartItem) error
	SetQuantity(ctx context.Context, buyer model.Principal, key model.CartKey, qty int64) error
	Remove(ctx context.Context, buyer model.Principal, key model.CartKey) error
	Clear(ctx context.Context, buyer model.Principal) error
}

// ProductReader is the slice of the catalog the cart needs.
type ProductReader interface {
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
}
