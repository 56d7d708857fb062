package handler

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	marketplacev1 "github.com/fekuna/omnipos-marketplace-service/internal/api/marketplacev1"
	"github.com/fekuna/omnipos-marketplace-service/internal/auth"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/product"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/rpc"
)

type ProductHandler struct {
	marketplacev1.UnimplementedCatalogServiceServer

	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) SubmitProduct(ctx context.Context, req *marketplacev1.SubmitProductRequest) (*marketplacev1.SubmitProductResponse, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	if req.Product == nil {
		return nil, status.Error(codes.InvalidArgument, "product is required")
	}

	id, err := h.uc.SubmitProduct(ctx, caller, mapInputFromAPI(req.Product))
	if err != nil {
		h.logger.Debug("failed to submit product", zap.Error(err))
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.SubmitProductResponse{ProductID: id}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *marketplacev1.UpdateProductRequest) (*marketplacev1.Empty, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	if req.Product == nil {
		return nil, status.Error(codes.InvalidArgument, "product is required")
	}

	if err := h.uc.UpdateProduct(ctx, caller, req.ProductID, mapInputFromAPI(req.Product)); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *ProductHandler) ApproveProduct(ctx context.Context, req *marketplacev1.ProductIDRequest) (*marketplacev1.Empty, error) {
	if err := h.uc.ApproveProduct(ctx, auth.GetPrincipal(ctx), req.ProductID); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *ProductHandler) RejectProduct(ctx context.Context, req *marketplacev1.ProductIDRequest) (*marketplacev1.Empty, error) {
	if err := h.uc.RejectProduct(ctx, auth.GetPrincipal(ctx), req.ProductID); err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func (h *ProductHandler) GetAllProducts(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.ListProductsResponse, error) {
	products, err := h.uc.GetAllProducts(ctx)
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.ListProductsResponse{Products: MapProductsToAPI(products)}, nil
}

func (h *ProductHandler) GetPendingProducts(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.ListProductsResponse, error) {
	products, err := h.uc.GetPendingProducts(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.ListProductsResponse{Products: MapProductsToAPI(products)}, nil
}

func (h *ProductHandler) GetSellerProducts(ctx context.Context, req *marketplacev1.GetSellerProductsRequest) (*marketplacev1.ListProductsResponse, error) {
	caller := auth.GetPrincipal(ctx)
	seller := model.Principal(req.Seller)
	if seller == "" {
		seller = caller
	}

	products, err := h.uc.GetSellerProducts(ctx, caller, seller)
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.ListProductsResponse{Products: MapProductsToAPI(products)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *marketplacev1.ProductIDRequest) (*marketplacev1.ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, auth.GetPrincipal(ctx), req.ProductID)
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.ProductResponse{Product: MapProductToAPI(p)}, nil
}

func mapInputFromAPI(in *marketplacev1.ProductInput) *dto.ProductInput {
	out := &dto.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		BasePrice:   in.BasePrice,
	}
	for _, v := range in.Variants {
		if v == nil {
			continue
		}
		out.Variants = append(out.Variants, dto.VariantInput{
			Size:  optionFromPtr(v.Size),
			Color: optionFromPtr(v.Color),
			Price: v.Price,
			Stock: v.Stock,
		})
	}
	for _, img := range in.Images {
		if img == nil {
			continue
		}
		out.Images = append(out.Images, model.ImageRef{Key: img.Key, URL: img.URL})
	}
	return out
}

// MapProductToAPI is shared with the HTTP gateway.
func MapProductToAPI(p *model.Product) *marketplacev1.Product {
	out := &marketplacev1.Product{
		ID:          p.ID,
		Seller:      string(p.Seller),
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Variants:    make([]*marketplacev1.Variant, len(p.Variants)),
		Images:      make([]*marketplacev1.ImageRef, len(p.Images)),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i, v := range p.Variants {
		out.Variants[i] = &marketplacev1.Variant{
			Size:  ptrFromOption(v.Size),
			Color: ptrFromOption(v.Color),
			Price: v.Price,
			Stock: v.Stock,
		}
	}
	for i, img := range p.Images {
		out.Images[i] = &marketplacev1.ImageRef{Key: img.Key, URL: img.URL}
	}
	return out
}

func MapProductsToAPI(products []model.Product) []*marketplacev1.Product {
	out := make([]*marketplacev1.Product, len(products))
	for i := range products {
		out[i] = MapProductToAPI(&products[i])
	}
	return out
}

func optionFromPtr(s *string) model.Option[string] {
	if s == nil {
		return model.None[string]()
	}
	return model.Some(*s)
}

func ptrFromOption(o model.Option[string]) *string {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
