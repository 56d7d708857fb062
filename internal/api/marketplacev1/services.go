package marketplacev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const packageName = "omnipos.marketplace.v1"

// unary builds a method descriptor that decodes Req, runs the interceptor
// chain and dispatches to call on the registered server.
func unary[S any, Req any, Resp any](service, method string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

// --- CatalogService ---

const CatalogServiceName = packageName + ".CatalogService"

type CatalogServiceServer interface {
	SubmitProduct(context.Context, *SubmitProductRequest) (*SubmitProductResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*Empty, error)
	ApproveProduct(context.Context, *ProductIDRequest) (*Empty, error)
	RejectProduct(context.Context, *ProductIDRequest) (*Empty, error)
	GetAllProducts(context.Context, *Empty) (*ListProductsResponse, error)
	GetPendingProducts(context.Context, *Empty) (*ListProductsResponse, error)
	GetSellerProducts(context.Context, *GetSellerProductsRequest) (*ListProductsResponse, error)
	GetProduct(context.Context, *ProductIDRequest) (*ProductResponse, error)
}

type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) SubmitProduct(context.Context, *SubmitProductRequest) (*SubmitProductResponse, error) {
	return nil, unimplemented("SubmitProduct")
}
func (UnimplementedCatalogServiceServer) UpdateProduct(context.Context, *UpdateProductRequest) (*Empty, error) {
	return nil, unimplemented("UpdateProduct")
}
func (UnimplementedCatalogServiceServer) ApproveProduct(context.Context, *ProductIDRequest) (*Empty, error) {
	return nil, unimplemented("ApproveProduct")
}
func (UnimplementedCatalogServiceServer) RejectProduct(context.Context, *ProductIDRequest) (*Empty, error) {
	return nil, unimplemented("RejectProduct")
}
func (UnimplementedCatalogServiceServer) GetAllProducts(context.Context, *Empty) (*ListProductsResponse, error) {
	return nil, unimplemented("GetAllProducts")
}
func (UnimplementedCatalogServiceServer) GetPendingProducts(context.Context, *Empty) (*ListProductsResponse, error) {
	return nil, unimplemented("GetPendingProducts")
}
func (UnimplementedCatalogServiceServer) GetSellerProducts(context.Context, *GetSellerProductsRequest) (*ListProductsResponse, error) {
	return nil, unimplemented("GetSellerProducts")
}
func (UnimplementedCatalogServiceServer) GetProduct(context.Context, *ProductIDRequest) (*ProductResponse, error) {
	return nil, unimplemented("GetProduct")
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CatalogServiceName, "SubmitProduct", CatalogServiceServer.SubmitProduct),
		unary(CatalogServiceName, "UpdateProduct", CatalogServiceServer.UpdateProduct),
		unary(CatalogServiceName, "ApproveProduct", CatalogServiceServer.ApproveProduct),
		unary(CatalogServiceName, "RejectProduct", CatalogServiceServer.RejectProduct),
		unary(CatalogServiceName, "GetAllProducts", CatalogServiceServer.GetAllProducts),
		unary(CatalogServiceName, "GetPendingProducts", CatalogServiceServer.GetPendingProducts),
		unary(CatalogServiceName, "GetSellerProducts", CatalogServiceServer.GetSellerProducts),
		unary(CatalogServiceName, "GetProduct", CatalogServiceServer.GetProduct),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/marketplace/v1/catalog",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

// --- CartService ---

const CartServiceName = packageName + ".CartService"

type CartServiceServer interface {
	AddToCart(context.Context, *AddToCartRequest) (*Empty, error)
	UpdateCartItem(context.Context, *UpdateCartItemRequest) (*Empty, error)
	RemoveFromCart(context.Context, *RemoveFromCartRequest) (*Empty, error)
	ClearCart(context.Context, *Empty) (*Empty, error)
	GetCart(context.Context, *Empty) (*GetCartResponse, error)
}

type UnimplementedCartServiceServer struct{}

func (UnimplementedCartServiceServer) AddToCart(context.Context, *AddToCartRequest) (*Empty, error) {
	return nil, unimplemented("AddToCart")
}
func (UnimplementedCartServiceServer) UpdateCartItem(context.Context, *UpdateCartItemRequest) (*Empty, error) {
	return nil, unimplemented("UpdateCartItem")
}
func (UnimplementedCartServiceServer) RemoveFromCart(context.Context, *RemoveFromCartRequest) (*Empty, error) {
	return nil, unimplemented("RemoveFromCart")
}
func (UnimplementedCartServiceServer) ClearCart(context.Context, *Empty) (*Empty, error) {
	return nil, unimplemented("ClearCart")
}
func (UnimplementedCartServiceServer) GetCart(context.Context, *Empty) (*GetCartResponse, error) {
	return nil, unimplemented("GetCart")
}

var CartService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CartServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CartServiceName, "AddToCart", CartServiceServer.AddToCart),
		unary(CartServiceName, "UpdateCartItem", CartServiceServer.UpdateCartItem),
		unary(CartServiceName, "RemoveFromCart", CartServiceServer.RemoveFromCart),
		unary(CartServiceName, "ClearCart", CartServiceServer.ClearCart),
		unary(CartServiceName, "GetCart", CartServiceServer.GetCart),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/marketplace/v1/cart",
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartService_ServiceDesc, srv)
}

// --- OrderService ---

const OrderServiceName = packageName + ".OrderService"

type OrderServiceServer interface {
	PlaceOrder(context.Context, *PlaceOrderRequest) (*PlaceOrderResponse, error)
	GetOrder(context.Context, *OrderIDRequest) (*OrderResponse, error)
	GetBuyerOrders(context.Context, *Empty) (*ListOrdersResponse, error)
	GetSellerOrders(context.Context, *Empty) (*ListOrdersResponse, error)
	GetAllOrders(context.Context, *Empty) (*ListOrdersResponse, error)
	UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*Empty, error)
}

type UnimplementedOrderServiceServer struct{}

func (UnimplementedOrderServiceServer) PlaceOrder(context.Context, *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	return nil, unimplemented("PlaceOrder")
}
func (UnimplementedOrderServiceServer) GetOrder(context.Context, *OrderIDRequest) (*OrderResponse, error) {
	return nil, unimplemented("GetOrder")
}
func (UnimplementedOrderServiceServer) GetBuyerOrders(context.Context, *Empty) (*ListOrdersResponse, error) {
	return nil, unimplemented("GetBuyerOrders")
}
func (UnimplementedOrderServiceServer) GetSellerOrders(context.Context, *Empty) (*ListOrdersResponse, error) {
	return nil, unimplemented("GetSellerOrders")
}
func (UnimplementedOrderServiceServer) GetAllOrders(context.Context, *Empty) (*ListOrdersResponse, error) {
	return nil, unimplemented("GetAllOrders")
}
func (UnimplementedOrderServiceServer) UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*Empty, error) {
	return nil, unimplemented("UpdateOrderStatus")
}

var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(OrderServiceName, "PlaceOrder", OrderServiceServer.PlaceOrder),
		unary(OrderServiceName, "GetOrder", OrderServiceServer.GetOrder),
		unary(OrderServiceName, "GetBuyerOrders", OrderServiceServer.GetBuyerOrders),
		unary(OrderServiceName, "GetSellerOrders", OrderServiceServer.GetSellerOrders),
		unary(OrderServiceName, "GetAllOrders", OrderServiceServer.GetAllOrders),
		unary(OrderServiceName, "UpdateOrderStatus", OrderServiceServer.UpdateOrderStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/marketplace/v1/order",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}

// --- UserService ---

const UserServiceName = packageName + ".UserService"

type UserServiceServer interface {
	GetCallerUserProfile(context.Context, *Empty) (*UserProfileResponse, error)
	SaveCallerUserProfile(context.Context, *SaveCallerUserProfileRequest) (*Empty, error)
	GetUserProfile(context.Context, *GetUserProfileRequest) (*UserProfileResponse, error)
	GetCallerUserRole(context.Context, *Empty) (*UserRoleResponse, error)
	AssignUserRole(context.Context, *AssignUserRoleRequest) (*Empty, error)
	IsCallerAdmin(context.Context, *Empty) (*IsCallerAdminResponse, error)
}

type UnimplementedUserServiceServer struct{}

func (UnimplementedUserServiceServer) GetCallerUserProfile(context.Context, *Empty) (*UserProfileResponse, error) {
	return nil, unimplemented("GetCallerUserProfile")
}
func (UnimplementedUserServiceServer) SaveCallerUserProfile(context.Context, *SaveCallerUserProfileRequest) (*Empty, error) {
	return nil, unimplemented("SaveCallerUserProfile")
}
func (UnimplementedUserServiceServer) GetUserProfile(context.Context, *GetUserProfileRequest) (*UserProfileResponse, error) {
	return nil, unimplemented("GetUserProfile")
}
func (UnimplementedUserServiceServer) GetCallerUserRole(context.Context, *Empty) (*UserRoleResponse, error) {
	return nil, unimplemented("GetCallerUserRole")
}
func (UnimplementedUserServiceServer) AssignUserRole(context.Context, *AssignUserRoleRequest) (*Empty, error) {
	return nil, unimplemented("AssignUserRole")
}
func (UnimplementedUserServiceServer) IsCallerAdmin(context.Context, *Empty) (*IsCallerAdminResponse, error) {
	return nil, unimplemented("IsCallerAdmin")
}

var UserService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: UserServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(UserServiceName, "GetCallerUserProfile", UserServiceServer.GetCallerUserProfile),
		unary(UserServiceName, "SaveCallerUserProfile", UserServiceServer.SaveCallerUserProfile),
		unary(UserServiceName, "GetUserProfile", UserServiceServer.GetUserProfile),
		unary(UserServiceName, "GetCallerUserRole", UserServiceServer.GetCallerUserRole),
		unary(UserServiceName, "AssignUserRole", UserServiceServer.AssignUserRole),
		unary(UserServiceName, "IsCallerAdmin", UserServiceServer.IsCallerAdmin),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/marketplace/v1/user",
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserService_ServiceDesc, srv)
}
