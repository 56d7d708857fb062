package cart

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/cart/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

// LockKey names the lock held by every cart mutation of buyer and by order
// placement from that cart.
func LockKey(buyer model.Principal) string {
	return "lock:cart:" + string(buyer)
}

type UseCase interface {
	AddToCart(ctx context.Context, caller model.Principal, input *dto.CartItemInput) error
	UpdateCartItem(ctx context.Context, caller model.Principal, input *dto.CartItemInput) error
	RemoveFromCart(ctx context.Context, caller model.Principal, key model.CartKey) error
	ClearCart(ctx context.Context, caller model.Principal) error
	GetCart(ctx context.Context, caller model.Principal) ([]model.CartItem, error)
}
