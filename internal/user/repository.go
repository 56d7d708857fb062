package user

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type Repository interface {
	// FindByPrincipal returns nil, nil when the principal has no profile.
	FindByPrincipal(ctx context.Context, principal model.Principal) (*model.UserProfile, error)
	Create(ctx context.Context, profile *model.UserProfile) error
	Update(ctx context.Context, profile *model.UserProfile) error
	UpdateRole(ctx context.Context, principal model.Principal, role model.Role, at time.Time) error
}
