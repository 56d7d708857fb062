package product

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
)

// ListCachePrefix prefixes every cached product listing. Anything that
// changes what a listing shows, stock included, deletes keys under it.
const ListCachePrefix = "products:list:"

type UseCase interface {
	SubmitProduct(ctx context.Context, caller model.Principal, input *dto.ProductInput) (uint64, error)
	UpdateProduct(ctx context.Context, caller model.Principal, id uint64, input *dto.ProductInput) error

	// Moderation
	ApproveProduct(ctx context.Context, caller model.Principal, id uint64) error
	RejectProduct(ctx context.Context, caller model.Principal, id uint64) error

	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetPendingProducts(ctx context.Context, caller model.Principal) ([]model.Product, error)
	GetSellerProducts(ctx context.Context, caller, seller model.Principal) ([]model.Product, error)
	GetProduct(ctx context.Context, caller model.Principal, id uint64) (*model.Product, error)
}
