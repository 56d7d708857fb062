package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	marketplacev1 "github.com/fekuna/omnipos-marketplace-service/internal/api/marketplacev1"
	"github.com/fekuna/omnipos-marketplace-service/internal/auth"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/order"
	"github.com/fekuna/omnipos-marketplace-service/internal/order/dto"
	"github.com/fekuna/omnipos-marketplace-service/internal/platform/logger"
	"github.com/fekuna/omnipos-marketplace-service/internal/rpc"
)

type OrderHandler struct {
	marketplacev1.UnimplementedOrderServiceServer

	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) PlaceOrder(ctx context.Context, req *marketplacev1.PlaceOrderRequest) (*marketplacev1.PlaceOrderResponse, error) {
	caller := auth.GetPrincipal(ctx)
	if caller == "" {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	if req.ShippingInfo == nil {
		return nil, status.Error(codes.InvalidArgument, "shipping_info is required")
	}

	input := &dto.PlaceOrderInput{
		ShippingInfo: model.ShippingInfo{
			Name:    req.ShippingInfo.Name,
			Phone:   req.ShippingInfo.Phone,
			Address: req.ShippingInfo.Address,
			City:    req.ShippingInfo.City,
			State:   req.ShippingInfo.State,
			Pincode: req.ShippingInfo.Pincode,
		},
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	}
	id, err := h.uc.PlaceOrder(ctx, caller, input)
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.PlaceOrderResponse{OrderID: id}, nil
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *marketplacev1.OrderIDRequest) (*marketplacev1.OrderResponse, error) {
	o, err := h.uc.GetOrder(ctx, auth.GetPrincipal(ctx), req.OrderID)
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.OrderResponse{Order: mapOrderToAPI(o)}, nil
}

func (h *OrderHandler) GetBuyerOrders(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.ListOrdersResponse, error) {
	orders, err := h.uc.GetBuyerOrders(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.ListOrdersResponse{Orders: mapOrdersToAPI(orders)}, nil
}

func (h *OrderHandler) GetSellerOrders(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.ListOrdersResponse, error) {
	orders, err := h.uc.GetSellerOrders(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.ListOrdersResponse{Orders: mapOrdersToAPI(orders)}, nil
}

func (h *OrderHandler) GetAllOrders(ctx context.Context, _ *marketplacev1.Empty) (*marketplacev1.ListOrdersResponse, error) {
	orders, err := h.uc.GetAllOrders(ctx, auth.GetPrincipal(ctx))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.ListOrdersResponse{Orders: mapOrdersToAPI(orders)}, nil
}

func (h *OrderHandler) UpdateOrderStatus(ctx context.Context, req *marketplacev1.UpdateOrderStatusRequest) (*marketplacev1.Empty, error) {
	err := h.uc.UpdateOrderStatus(ctx, auth.GetPrincipal(ctx), req.OrderID, model.OrderStatus(req.Status))
	if err != nil {
		return nil, rpc.ToStatus(err)
	}
	return &marketplacev1.Empty{}, nil
}

func mapOrderToAPI(o *model.Order) *marketplacev1.Order {
	items := make([]*marketplacev1.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = &marketplacev1.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Seller:       string(it.Seller),
			VariantIndex: int32(it.VariantIndex),
			VariantSize:  ptrFromOption(it.VariantSize),
			VariantColor: ptrFromOption(it.VariantColor),
			Quantity:     it.Quantity,
			Price:        it.Price,
		}
	}

	return &marketplacev1.Order{
		ID:            o.ID,
		Buyer:         string(o.Buyer),
		Items:         items,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		ShippingInfo: &marketplacev1.ShippingInfo{
			Name:    o.ShippingInfo.Name,
			Phone:   o.ShippingInfo.Phone,
			Address: o.ShippingInfo.Address,
			City:    o.ShippingInfo.City,
			State:   o.ShippingInfo.State,
			Pincode: o.ShippingInfo.Pincode,
		},
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func mapOrdersToAPI(orders []model.Order) []*marketplacev1.Order {
	out := make([]*marketplacev1.Order, len(orders))
	for i := range orders {
		out[i] = mapOrderToAPI(&orders[i])
	}
	return out
}

func ptrFromOption(o model.Option[string]) *string {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
