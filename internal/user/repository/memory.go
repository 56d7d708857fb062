package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[model.Principal]model.UserProfile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[model.Principal]model.UserProfile)}
}

func (r *MemoryRepository) FindByPrincipal(_ context.Context, principal model.Principal) (*model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[principal]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) Create(_ context.Context, profile *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[profile.Principal]; exists {
		return fmt.Errorf("profile %s already exists", profile.Principal)
	}
	r.profiles[profile.Principal] = *profile
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, profile *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.profiles[profile.Principal]
	if !ok {
		return apperror.New(apperror.KindNotFound, "profile %s", profile.Principal)
	}
	current.Name = profile.Name
	current.Email = profile.Email
	current.Phone = profile.Phone
	current.UpdatedAt = profile.UpdatedAt
	r.profiles[profile.Principal] = current
	return nil
}

func (r *MemoryRepository) UpdateRole(_ context.Context, principal model.Principal, role model.Role, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.profiles[principal]
	if !ok {
		return apperror.New(apperror.KindNotFound, "profile %s", principal)
	}
	current.Role = role
	current.UpdatedAt = at
	r.profiles[principal] = current
	return nil
}
