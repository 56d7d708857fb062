package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	marketplacev1 "github.com/fekuna/omnipos-marketplace-service/internal/api/marketplacev1"
	"github.com/fekuna/omnipos-marketplace-service/internal/auth"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/rpc"
	"github.com/fekuna/omnipos-marketplace-service/internal/user"
	"github.com/fekuna/omnipos-marketplace-service/internal/user/dto"
)

type UserHandler struct {
	marketplacev1.UnimplementedUserServiceServer

	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UserHandler) GetCallerUserProfile(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.UserProfileResponse, error) {
	p, err := h.uc.GetCallerProfile(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.UserProfileResponse{Profile: mapProfileToAPI(p)}, nil
}

func (h *UserHandler) SaveCallerUserProfile(ctx context.Context, req *marketplacev1.SaveCallerUserProfileRequest) (*marketplacev1.Empty, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	if req.Profile == nil {
		return nil, status.Error(codes.InvalidArgument, "profile is required")
	}

	input := &dto.SaveProfileInput{
		Name:  req.Profile.Name,
		Email: req.Profile.Email,
		Role:  model.Role(req.Profile.Role),
	}
	if req.Profile.Phone != nil {
		input.Phone = model.Some(*req.Profile.Phone)
	}

	if _, err := h.uc.SaveCallerProfile(ctx, caller, input); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *UserHandler) GetUserProfile(ctx context.Context, req *marketplacev1.GetUserProfileRequest) (*marketplacev1.UserProfileResponse, error) {
	p, err := h.uc.GetUserProfile(ctx, auth.GetPrincipal(ctx), model.Principal(req.Principal))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.UserProfileResponse{Profile: mapProfileToAPI(p)}, nil
}

func (h *UserHandler) GetCallerUserRole(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.UserRoleResponse, error) {
	role, err := h.uc.GetCallerRole(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.UserRoleResponse{Role: string(role)}, nil
}

func (h *UserHandler) AssignUserRole(ctx context.Context, req *marketplacev1.AssignUserRoleRequest) (*marketplacev1.Empty, error) {
	err := h.uc.AssignRole(ctx, auth.GetPrincipal(ctx), model.Principal(req.Principal), model.Role(req.Role))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *UserHandler) IsCallerAdmin(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.IsCallerAdminResponse, error) {
	ok, err := h.uc.IsCallerAdmin(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.IsCallerAdminResponse{IsAdmin: ok}, nil
}

func mapProfileToAPI(p *model.UserProfile) *marketplacev1.UserProfile {
	if p == nil {
		return nil
	}
	out := &marketplacev1.UserProfile{
		Principal: string(p.Principal),
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
	}
	if phone, ok := p.Phone.Get(); ok {
		out.Phone = &phone
	}
	return out
}
