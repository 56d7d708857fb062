package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/access"
	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/cache"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/validate"
	"github.com/fekuna/omnipos-marketplace-service/internal/product"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
)

const listCacheTTL = 5 * time.Minute

type productUseCase struct {
	repo   product.Repository
	guard  *access.Guard
	cache  *cache.RedisClient
	logger logger.ZapLogger
	now    func() time.Time
}

// NewProductUseCase builds the catalog. cache may be nil, in which case every
// listing goes to the repository.
func NewProductUseCase(repo product.Repository, guard *access.Guard, cache *cache.RedisClient, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		guard:  guard,
		cache:  cache,
		logger: log,
		now:    time.Now,
	}
}

func (uc *productUseCase) SubmitProduct(ctx context.Context, caller model.Principal, input *dto.ProductInput) (uint64, error) {
	if _, err := uc.guard.Require(ctx, caller, access.CapSubmitProduct); err != nil {
		return 0, err
	}
	if err := validate.Struct(input); err != nil {
		return 0, err
	}

	now := uc.now()
	p := &model.Product{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Seller:      caller,
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Images:      append(model.ImageRefs(nil), input.Images...),
		Status:      model.ProductStatusPendingApproval,
		Variants:    input.ToVariants(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return 0, err
	}

	uc.logger.Info("product submitted", zap.Uint64("product_id", p.ID), zap.String("seller", string(caller)))
	uc.invalidateProductCache(ctx)
	return p.ID, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, caller model.Principal, id uint64, input *dto.ProductInput) error {
	profile, err := uc.guard.Require(ctx, caller, access.CapSubmitProduct)
	if err != nil {
		return err
	}
	if err := validate.Struct(input); err != nil {
		return err
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.New(apperror.KindNotFound, "product %d", id)
	}
	if !p.OwnedBy(caller) && profile.Role != model.RoleAdmin {
		return apperror.New(apperror.KindForbidden, "product %d belongs to another seller", id)
	}

	p.Name = input.Name
	p.Description = input.Description
	p.BasePrice = input.BasePrice
	p.Images = append(model.ImageRefs(nil), input.Images...)
	p.Variants = input.ToVariants()
	// every edit goes back through moderation
	p.Status = model.ProductStatusPendingApproval
	p.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return err
	}

	uc.invalidateProductCache(ctx)
	return nil
}

func (uc *productUseCase) ApproveProduct(ctx context.Context, caller model.Principal, id uint64) error {
	return uc.moderate(ctx, caller, id, model.ProductStatusApproved)
}

func (uc *productUseCase) RejectProduct(ctx context.Context, caller model.Principal, id uint64) error {
	return uc.moderate(ctx, caller, id, model.ProductStatusRejected)
}

func (uc *productUseCase) moderate(ctx context.Context, caller model.Principal, id uint64, to model.ProductStatus) error {
	if _, err := uc.guard.Require(ctx, caller, access.CapModerateProducts); err != nil {
		return err
	}
	if err := uc.repo.UpdateStatus(ctx, id, model.ProductStatusPendingApproval, to, uc.now()); err != nil {
		return err
	}

	uc.logger.Info("product moderated",
		zap.Uint64("product_id", id),
		zap.String("status", string(to)),
		zap.String("admin", string(caller)),
	)
	uc.invalidateProductCache(ctx)
	return nil
}

func (uc *productUseCase) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return uc.listProducts(ctx, &dto.ProductFilters{Status: model.ProductStatusApproved})
}

func (uc *productUseCase) GetPendingProducts(ctx context.Context, caller model.Principal) ([]model.Product, error) {
	if _, err := uc.guard.Require(ctx, caller, access.CapModerateProducts); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx, &dto.ProductFilters{Status: model.ProductStatusPendingApproval})
}

func (uc *productUseCase) GetSellerProducts(ctx context.Context, caller, seller model.Principal) ([]model.Product, error) {
	profile, err := uc.guard.Require(ctx, caller, access.CapSubmitProduct)
	if err != nil {
		return nil, err
	}
	if caller != seller && profile.Role != model.RoleAdmin {
		return nil, apperror.New(apperror.KindForbidden, "cannot list products of %s", seller)
	}
	return uc.repo.FindAll(ctx, &dto.ProductFilters{Seller: seller})
}

func (uc *productUseCase) GetProduct(ctx context.Context, caller model.Principal, id uint64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.New(apperror.KindNotFound, "product %d", id)
	}
	if p.IsApproved() || (caller != "" && p.OwnedBy(caller)) {
		return p, nil
	}

	admin, err := uc.guard.IsAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !admin {
		// hidden products look absent to everyone else
		return nil, apperror.New(apperror.KindNotFound, "product %d", id)
	}
	return p, nil
}

func (uc *productUseCase) listProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		var cached []model.Product
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" && uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, products, listCacheTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	b, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	hash := md5.Sum(b)
	return fmt.Sprintf("%s%x", product.ListCachePrefix, hash), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPrefix(ctx, product.ListCachePrefix); err != nil {
		uc.logger.Error("failed to invalidate product cache", zap.Error(err))
	}
}
