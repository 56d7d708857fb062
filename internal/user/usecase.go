package user

import (
	"context"

	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/user/dto"
)

type UseCase interface {
	GetCallerProfile(ctx context.Context, caller model.Principal) (*model.UserProfile, error)
	SaveCallerProfile(ctx context.Context, caller model.Principal, input *dto.SaveProfileInput) (*model.UserProfile, error)
	GetUserProfile(ctx context.Context, caller, target model.Principal) (*model.UserProfile, error)
	GetCallerRole(ctx context.Context, caller model.Principal) (model.Role, error)
	AssignRole(ctx context.Context, caller, target model.Principal, role model.Role) error
	IsCallerAdmin(ctx context.Context, caller model.Principal) (bool, error)
}
