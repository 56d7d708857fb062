package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-marketplace-service/internal/access"
	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/validate"
	"github.com/fekuna/omnipos-marketplace-service/internal/user"
	"github.com/fekuna/omnipos-marketplace-service/internal/user/dto"
)

type userUseCase struct {
	repo   user.Repository
	guard  *access.Guard
	admins map[model.Principal]struct{}
	logger logger.ZapLogger
	now    func() time.Time
}

// NewUserUseCase wires profile management. Principals in bootstrapAdmins get
// the admin role when they first save a profile.
func NewUserUseCase(repo user.Repository, guard *access.Guard, bootstrapAdmins []string, log logger.ZapLogger) user.UseCase {
	admins := make(map[model.Principal]struct{}, len(bootstrapAdmins))
	for _, p := range bootstrapAdmins {
		admins[model.Principal(p)] = struct{}{}
	}
	return &userUseCase{
		repo:   repo,
		guard:  guard,
		admins: admins,
		logger: log,
		now:    time.Now,
	}
}

func (uc *userUseCase) GetCallerProfile(ctx context.Context, caller model.Principal) (*model.UserProfile, error) {
	if caller == "" {
		return nil, nil
	}
	return uc.repo.FindByPrincipal(ctx, caller)
}

func (uc *userUseCase) SaveCallerProfile(ctx context.Context, caller model.Principal, input *dto.SaveProfileInput) (*model.UserProfile, error) {
	if caller == "" {
		return nil, apperror.New(apperror.KindUnauthorized, "anonymous caller cannot own a profile")
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByPrincipal(ctx, caller)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if existing != nil {
		// role never changes here; AssignRole is the only path
		existing.Name = input.Name
		existing.Email = input.Email
		existing.Phone = input.Phone
		existing.UpdatedAt = now
		if err := uc.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	role, err := uc.initialRole(caller, input.Role)
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		Principal: caller,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	uc.logger.Info("profile created", zap.String("principal", string(caller)), zap.String("role", string(role)))
	return profile, nil
}

func (uc *userUseCase) initialRole(caller model.Principal, requested model.Role) (model.Role, error) {
	if _, ok := uc.admins[caller]; ok {
		return model.RoleAdmin, nil
	}
	switch requested {
	case "":
		return model.RoleBuyer, nil
	case model.RoleBuyer, model.RoleSeller:
		return requested, nil
	case model.RoleAdmin:
		return "", apperror.New(apperror.KindUnauthorized, "admin role can only be assigned by an admin")
	default:
		return "", apperror.New(apperror.KindInvalidInput, "unknown role %q", requested)
	}
}

func (uc *userUseCase) GetUserProfile(ctx context.Context, caller, target model.Principal) (*model.UserProfile, error) {
	if caller != target {
		if _, err := uc.guard.Require(ctx, caller, access.CapAssignRoles); err != nil {
			if apperror.KindOf(err) == apperror.KindUnauthorized {
				return nil, apperror.New(apperror.KindForbidden, "only admins may read other profiles")
			}
			return nil, err
		}
	}
	return uc.repo.FindByPrincipal(ctx, target)
}

func (uc *userUseCase) GetCallerRole(ctx context.Context, caller model.Principal) (model.Role, error) {
	profile, err := uc.guard.Resolve(ctx, caller)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

func (uc *userUseCase) AssignRole(ctx context.Context, caller, target model.Principal, role model.Role) error {
	if _, err := uc.guard.Require(ctx, caller, access.CapAssignRoles); err != nil {
		return err
	}
	if !role.Valid() {
		return apperror.New(apperror.KindInvalidInput, "unknown role %q", role)
	}

	if err := uc.repo.UpdateRole(ctx, target, role, uc.now()); err != nil {
		return err
	}

	uc.logger.Info("role assigned",
		zap.String("admin", string(caller)),
		zap.String("principal", string(target)),
		zap.String("role", string(role)),
	)
	return nil
}

func (uc *userUseCase) IsCallerAdmin(ctx context.Context, caller model.Principal) (bool, error) {
	return uc.guard.IsAdmin(ctx, caller)
}
