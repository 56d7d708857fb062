package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/access"
	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/cart"
	"github.com/fekuna/omnipos-marketplace-service/internal/cart/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/inventory"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/validate"
)

type cartUseCase struct {
	repo     cart.Repository
	products cart.ProductReader
	locker   inventory.Locker
	guard    *access.Guard
	logger   logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, products cart.ProductReader, locker inventory.Locker, guard *access.Guard, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:     repo,
		products: products,
		locker:   locker,
		guard:    guard,
		logger:   log,
	}
}

// locked runs fn while holding buyer's cart lock.
func (uc *cartUseCase) locked(ctx context.Context, buyer model.Principal, fn func() error) error {
	unlock, err := uc.locker.Lock(ctx, []string{cart.LockKey(buyer)})
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// AddToCart does not look at stock; that happens at placement.
func (uc *cartUseCase) AddToCart(ctx context.Context, caller model.Principal, input *dto.CartItemInput) error {
	if _, err := uc.guard.Require(ctx, caller, access.CapManageCart); err != nil {
		return err
	}
	if err := validate.Struct(input); err != nil {
		return err
	}

	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.New(apperror.KindNotFound, "product %d", input.ProductID)
	}
	if !p.IsApproved() {
		return apperror.New(apperror.KindProductUnavailable, "product %d is %s", p.ID, p.Status)
	}
	if _, ok := p.Variant(input.VariantIndex); !ok {
		return apperror.New(apperror.KindOutOfRange, "product %d has %d variants, got index %d", p.ID, len(p.Variants), input.VariantIndex)
	}

	item := model.CartItem{ProductID: input.ProductID, VariantIndex: input.VariantIndex, Quantity: input.Quantity}
	err = uc.locked(ctx, caller, func() error {
		items, err := uc.repo.Get(ctx, caller)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.Key() != item.Key() {
				continue
			}
			if _, ok := model.CheckedAdd(it.Quantity, item.Quantity); !ok {
				return apperror.New(apperror.KindInvalidInput, "cart quantity for product %d overflows", item.ProductID)
			}
		}
		return uc.repo.Add(ctx, caller, item)
	})
	if err != nil {
		return err
	}

	uc.logger.Debug("cart item added",
		zap.String("buyer", string(caller)),
		zap.Uint64("product_id", item.ProductID),
		zap.Int("variant_index", item.VariantIndex),
		zap.Int64("quantity", item.Quantity),
	)
	return nil
}

// UpdateCartItem sets an absolute quantity. Zero is rejected rather than
// treated as a removal.
func (uc *cartUseCase) UpdateCartItem(ctx context.Context, caller model.Principal, input *dto.CartItemInput) error {
	if _, err := uc.guard.Require(ctx, caller, access.CapManageCart); err != nil {
		return err
	}
	if err := validate.Struct(input); err != nil {
		return err
	}
	return uc.locked(ctx, caller, func() error {
		return uc.repo.SetQuantity(ctx, caller, input.Key(), input.Quantity)
	})
}

func (uc *cartUseCase) RemoveFromCart(ctx context.Context, caller model.Principal, key model.CartKey) error {
	if _, err := uc.guard.Require(ctx, caller, access.CapManageCart); err != nil {
		return err
	}
	return uc.locked(ctx, caller, func() error {
		return uc.repo.Remove(ctx, caller, key)
	})
}

func (uc *cartUseCase) ClearCart(ctx context.Context, caller model.Principal) error {
	if _, err := uc.guard.Require(ctx, caller, access.CapManageCart); err != nil {
		return err
	}
	return uc.locked(ctx, caller, func() error {
		return uc.repo.Clear(ctx, caller)
	})
}

func (uc *cartUseCase) GetCart(ctx context.Context, caller model.Principal) ([]model.CartItem, error) {
	if _, err := uc.guard.Require(ctx, caller, access.CapManageCart); err != nil {
		return nil, err
	}
	return uc.repo.Get(ctx, caller)
}
