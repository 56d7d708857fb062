package repository

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type MemoryRepository struct {
	mu    sync.Mutex
	carts map[model.Principal][]model.CartItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[model.Principal][]model.CartItem)}
}

func (r *MemoryRepository) Get(_ context.Context, buyer model.Principal) ([]model.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]model.CartItem{}, r.carts[buyer]...), nil
}

func (r *MemoryRepository) Add(_ context.Context, buyer model.Principal, item model.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[buyer]
	if i := indexOf(items, item.Key()); i >= 0 {
		qty, ok := model.CheckedAdd(items[i].Quantity, item.Quantity)
		if !ok {
			return apperror.New(apperror.KindInvalidInput, "cart quantity for product %d overflows", item.ProductID)
		}
		items[i].Quantity = qty
		return nil
	}
	r.carts[buyer] = append(items, item)
	return nil
}

func (r *MemoryRepository) SetQuantity(_ context.Context, buyer model.Principal, key model.CartKey, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[buyer]
	i := indexOf(items, key)
	if i < 0 {
		return apperror.New(apperror.KindNotFound, "cart has no product %d variant %d", key.ProductID, key.VariantIndex)
	}
	items[i].Quantity = qty
	return nil
}

func (r *MemoryRepository) Remove(_ context.Context, buyer model.Principal, key model.CartKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[buyer]
	if i := indexOf(items, key); i >= 0 {
		r.carts[buyer] = append(items[:i:i], items[i+1:]...)
	}
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context, buyer model.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, buyer)
	return nil
}

func indexOf(items []model.CartItem, key model.CartKey) int {
	for i, it := range items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}
