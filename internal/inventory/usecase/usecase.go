package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/inventory"
	"github.com/fekuna/omnipos-marketplace-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/cache"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/observability"
	"github.com/fekuna/omnipos-marketplace-service/internal/product"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	locker inventory.Locker
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// NewInventoryUseCase builds the stock guard. cache may be nil; when set,
// cached catalog listings are dropped after every stock change.
func NewInventoryUseCase(repo inventory.Repository, locker inventory.Locker, cache *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		cache:  cache,
		logger: log,
	}
}

func lockKey(productID uint64, variantIndex int) string {
	return fmt.Sprintf("lock:inventory:%d:%d", productID, variantIndex)
}

// lockKeys returns the distinct variant keys of lines in sorted order so
// concurrent placements always lock in the same sequence.
func lockKeys(lines []model.CartItem) []string {
	seen := make(map[string]struct{}, len(lines))
	keys := make([]string, 0, len(lines))
	for _, l := range lines {
		k := lockKey(l.ProductID, l.VariantIndex)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (uc *inventoryUseCase) Reserve(ctx context.Context, lines []model.CartItem) (res *dto.Reservation, err error) {
	ctx, span := otel.Tracer(observability.ServiceName).Start(ctx, "inventory.Reserve")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("inventory.lines", len(lines)))

	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, apperror.New(apperror.KindInvalidInput, "quantity for product %d must be positive", l.ProductID)
		}
	}

	unlock, err := uc.locker.Lock(ctx, lockKeys(lines))
	if err != nil {
		return nil, err
	}
	defer unlock()

	reserved, err := uc.validate(ctx, lines)
	if err != nil {
		return nil, err
	}

	done := make([]dto.ReservedLine, 0, len(reserved))
	for _, line := range reserved {
		err := uc.repo.DecrementStock(ctx, line.Item.ProductID, line.Item.VariantIndex, line.Item.Quantity)
		if err != nil {
			uc.rollback(ctx, done)
			return nil, err
		}
		done = append(done, line)
	}

	uc.invalidateListings(ctx)
	return &dto.Reservation{Lines: done}, nil
}

func (uc *inventoryUseCase) invalidateListings(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPrefix(ctx, product.ListCachePrefix); err != nil {
		uc.logger.Error("failed to invalidate product cache", zap.Error(err))
	}
}

// validate fresh-reads every product touched by lines. It must run under the
// variant locks.
func (uc *inventoryUseCase) validate(ctx context.Context, lines []model.CartItem) ([]dto.ReservedLine, error) {
	products := make(map[uint64]*model.Product, len(lines))
	wanted := make(map[model.CartKey]int64, len(lines))
	reserved := make([]dto.ReservedLine, 0, len(lines))
	var total int64

	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			var err error
			p, err = uc.repo.FindByID(ctx, l.ProductID)
			if err != nil {
				return nil, err
			}
			products[l.ProductID] = p
		}
		if p == nil || !p.IsApproved() {
			return nil, apperror.New(apperror.KindProductUnavailable, "product %d is not available", l.ProductID)
		}

		v, ok := p.Variant(l.VariantIndex)
		if !ok {
			return nil, apperror.New(apperror.KindProductUnavailable, "product %d no longer has variant %d", l.ProductID, l.VariantIndex)
		}

		want, ok := model.CheckedAdd(wanted[l.Key()], l.Quantity)
		if !ok {
			return nil, apperror.New(apperror.KindInvalidInput, "quantity for product %d overflows", l.ProductID)
		}
		wanted[l.Key()] = want
		if want > v.Stock {
			return nil, apperror.New(apperror.KindInsufficientStock,
				"product %d variant %d: %d in stock, %d requested", l.ProductID, l.VariantIndex, v.Stock, want)
		}

		subtotal, ok := model.CheckedMul(v.Price, l.Quantity)
		if ok {
			total, ok = model.CheckedAdd(total, subtotal)
		}
		if !ok {
			return nil, apperror.New(apperror.KindInvalidInput, "order total overflows at product %d", l.ProductID)
		}

		reserved = append(reserved, dto.ReservedLine{Item: l, Product: *p.Clone(), Variant: v})
	}
	return reserved, nil
}

func (uc *inventoryUseCase) rollback(ctx context.Context, lines []dto.ReservedLine) {
	for _, line := range lines {
		err := uc.repo.IncrementStock(ctx, line.Item.ProductID, line.Item.VariantIndex, line.Item.Quantity)
		if err != nil {
			uc.logger.Error("failed to roll back stock decrement",
				zap.Uint64("product_id", line.Item.ProductID),
				zap.Int("variant_index", line.Item.VariantIndex),
				zap.Int64("quantity", line.Item.Quantity),
				zap.Error(err),
			)
		}
	}
}

func (uc *inventoryUseCase) Release(ctx context.Context, res *dto.Reservation) error {
	if res == nil || len(res.Lines) == 0 {
		return nil
	}

	items := make([]model.CartItem, len(res.Lines))
	for i, l := range res.Lines {
		items[i] = l.Item
	}
	unlock, err := uc.locker.Lock(ctx, lockKeys(items))
	if err != nil {
		return err
	}
	defer unlock()

	var errs []error
	for _, l := range res.Lines {
		if err := uc.repo.IncrementStock(ctx, l.Item.ProductID, l.Item.VariantIndex, l.Item.Quantity); err != nil {
			errs = append(errs, err)
		}
	}
	uc.invalidateListings(ctx)
	return errors.Join(errs...)
}
