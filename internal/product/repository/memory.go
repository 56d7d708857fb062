package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
)

// MemoryRepository keeps the catalog in process. Every read returns a deep
// copy so callers never alias stored variants.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   uint64
	products map[uint64]*model.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[uint64]*model.Product)}
}

func (r *MemoryRepository) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p.Clone()
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id uint64) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if f != nil && f.Seller != "" && p.Seller != f.Seller {
			continue
		}
		if f != nil && f.Status != "" && p.Status != f.Status {
			continue
		}
		products = append(products, *p.Clone())
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *MemoryRepository) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[p.ID]
	if !ok {
		return apperror.New(apperror.KindNotFound, "product %d", p.ID)
	}
	next := p.Clone()
	next.Seller = current.Seller
	next.CreatedAt = current.CreatedAt
	r.products[p.ID] = next
	return nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id uint64, from, to model.ProductStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "product %d", id)
	}
	if p.Status != from {
		return apperror.New(apperror.KindInvalidTransition, "product %d is %s, not %s", id, p.Status, from)
	}
	p.Status = to
	p.UpdatedAt = at
	return nil
}

func (r *MemoryRepository) DecrementStock(_ context.Context, productID uint64, variantIndex int, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok || !p.IsApproved() {
		return apperror.New(apperror.KindProductUnavailable, "product %d", productID)
	}
	if variantIndex < 0 || variantIndex >= len(p.Variants) {
		return apperror.New(apperror.KindProductUnavailable, "product %d has no variant %d", productID, variantIndex)
	}
	v := &p.Variants[variantIndex]
	if v.Stock < qty {
		return apperror.New(apperror.KindInsufficientStock, "product %d variant %d: have %d, want %d", productID, variantIndex, v.Stock, qty)
	}
	v.Stock -= qty
	return nil
}

func (r *MemoryRepository) IncrementStock(_ context.Context, productID uint64, variantIndex int, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return apperror.New(apperror.KindNotFound, "product %d", productID)
	}
	if variantIndex < 0 || variantIndex >= len(p.Variants) {
		return apperror.New(apperror.KindOutOfRange, "product %d has no variant %d", productID, variantIndex)
	}
	p.Variants[variantIndex].Stock += qty
	return nil
}
