package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/order/dto"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	nextID uint64
	orders map[uint64]*model.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[uint64]*model.Order)}
}

func (r *MemoryRepository) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id uint64) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]model.Order, 0)
	for _, o := range r.orders {
		if f != nil && f.Buyer != "" && o.Buyer != f.Buyer {
			continue
		}
		if f != nil && f.Seller != "" && !o.HasSeller(f.Seller) {
			continue
		}
		orders = append(orders, *o.Clone())
	}
	// ids are assigned in placement order
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id uint64, from, to model.OrderStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "order %d", id)
	}
	if o.Status != from {
		return apperror.New(apperror.KindInvalidTransition, "order %d is %s, not %s", id, o.Status, from)
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}
