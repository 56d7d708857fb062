package product

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
)

type Repository interface {
	// Create assigns p.ID.
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	// FindAll returns products in submission order.
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	// Update replaces the editable fields, the variants and the status.
	Update(ctx context.Context, p *model.Product) error
	// UpdateStatus moves id from one status to another. It fails with
	// InvalidTransition when the stored status is not from.
	UpdateStatus(ctx context.Context, id uint64, from, to model.ProductStatus, at time.Time) error

	// Stock primitives used by order placement. DecrementStock fails rather
	// than letting stock go negative or selling an unapproved product.
	DecrementStock(ctx context.Context, productID uint64, variantIndex int, qty int64) error
	IncrementStock(ctx context.Context, productID uint64, variantIndex int, qty int64) error
}
