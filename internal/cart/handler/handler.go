package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	marketplacev1 "github.com/fekuna/omnipos-marketplace-service/internal/api/marketplacev1"
	"github.com/fekuna/omnipos-marketplace-service/internal/auth"
	"github.com/fekuna/omnipos-marketplace-service/internal/cart"
	"github.com/fekuna/omnipos-marketplace-service/internal/cart/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/rpc"
)

type CartHandler struct {
	marketplacev1.UnimplementedCartServiceServer

	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) AddToCart(ctx context.Context, req *marketplacev1.AddToCartRequest) (*marketplacev1.Empty, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	if req.Item == nil {
		return nil, status.Error(codes.InvalidArgument, "item is required")
	}

	input := &dto.CartItemInput{
		ProductID:    req.Item.ProductID,
		VariantIndex: int(req.Item.VariantIndex),
		Quantity:     req.Item.Quantity,
	}
	if err := h.uc.AddToCart(ctx, caller, input); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *CartHandler) UpdateCartItem(ctx context.Context, req *marketplacev1.UpdateCartItemRequest) (*marketplacev1.Empty, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}

	input := &dto.CartItemInput{
		ProductID:    req.ProductID,
		VariantIndex: int(req.VariantIndex),
		Quantity:     req.Quantity,
	}
	if err := h.uc.UpdateCartItem(ctx, caller, input); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *CartHandler) RemoveFromCart(ctx context.Context, req *marketplacev1.RemoveFromCartRequest) (*marketplacev1.Empty, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}

	key := model.CartKey{ProductID: req.ProductID, VariantIndex: int(req.VariantIndex)}
	if err := h.uc.RemoveFromCart(ctx, caller, key); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *CartHandler) ClearCart(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.Empty, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	if err := h.uc.ClearCart(ctx, caller); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *CartHandler) GetCart(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.GetCartResponse, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}

	items, err := h.uc.GetCart(ctx, caller)
	if err != nil {
		return nil, rpc.ToStatus(err)
	}

	resp := &marketplacev1.GetCartResponse{Items: make([]*marketplacev1.CartItem, len(items))}
	for i, it := range items {
		resp.Items[i] = &marketplacev1.CartItem{
			ProductID:    it.ProductID,
			VariantIndex: int32(it.VariantIndex),
			Quantity:     it.Quantity,
		}
	}
	return resp, nil
}
