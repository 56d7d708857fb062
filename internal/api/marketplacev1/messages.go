package marketplacev1

import "time"

type Empty struct{}

// --- catalog ---

type Variant struct {
	Size  *string `json:"size,omitempty"`
	Color *string `json:"color,omitempty"`
	Price int64   `json:"price"`
	Stock int64   `json:"stock"`
}

type ImageRef struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Product struct {
	ID          uint64      `json:"id"`
	Seller      string      `json:"seller"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BasePrice   int64       `json:"base_price"`
	Variants    []*Variant  `json:"variants"`
	Images      []*ImageRef `json:"images"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type ProductInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BasePrice   int64       `json:"base_price"`
	Variants    []*Variant  `json:"variants"`
	Images      []*ImageRef `json:"images"`
}

type SubmitProductRequest struct {
	Product *ProductInput `json:"product"`
}

type SubmitProductResponse struct {
	ProductID uint64 `json:"product_id"`
}

type UpdateProductRequest struct {
	ProductID uint64        `json:"product_id"`
	Product   *ProductInput `json:"product"`
}

type ProductIDRequest struct {
	ProductID uint64 `json:"product_id"`
}

type GetSellerProductsRequest struct {
	Seller string `json:"seller"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

// --- cart ---

type CartItem struct {
	ProductID    uint64 `json:"product_id"`
	VariantIndex int32  `json:"variant_index"`
	Quantity     int64  `json:"quantity"`
}

type AddToCartRequest struct {
	Item *CartItem `json:"item"`
}

type UpdateCartItemRequest struct {
	ProductID    uint64 `json:"product_id"`
	VariantIndex int32  `json:"variant_index"`
	Quantity     int64  `json:"quantity"`
}

type RemoveFromCartRequest struct {
	ProductID    uint64 `json:"product_id"`
	VariantIndex int32  `json:"variant_index"`
}

type GetCartResponse struct {
	Items []*CartItem `json:"items"`
}

// --- orders ---

type ShippingInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type OrderItem struct {
	ProductID    uint64  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Seller       string  `json:"seller"`
	VariantIndex int32   `json:"variant_index"`
	VariantSize  *string `json:"variant_size,omitempty"`
	VariantColor *string `json:"variant_color,omitempty"`
	Quantity     int64   `json:"quantity"`
	Price        int64   `json:"price"`
}

type Order struct {
	ID            uint64        `json:"id"`
	Buyer         string        `json:"buyer"`
	Items         []*OrderItem  `json:"items"`
	TotalAmount   int64         `json:"total_amount"`
	PaymentMethod string        `json:"payment_method"`
	ShippingInfo  *ShippingInfo `json:"shipping_info"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type PlaceOrderRequest struct {
	ShippingInfo  *ShippingInfo `json:"shipping_info"`
	PaymentMethod string        `json:"payment_method"`
}

type PlaceOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

type OrderIDRequest struct {
	OrderID uint64 `json:"order_id"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type UpdateOrderStatusRequest struct {
	OrderID uint64 `json:"order_id"`
	Status  string `json:"status"`
}

// --- users ---

type UserProfile struct {
	Principal string  `json:"principal"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
}

type SaveCallerUserProfileRequest struct {
	Profile *UserProfile `json:"profile"`
}

type GetUserProfileRequest struct {
	Principal string `json:"principal"`
}

// UserProfileResponse carries a nil profile when none exists yet.
type UserProfileResponse struct {
	Profile *UserProfile `json:"profile"`
}

type UserRoleResponse struct {
	Role string `json:"role"`
}

type AssignUserRoleRequest struct {
	Principal string `json:"principal"`
	Role      string `json:"role"`
}

type IsCallerAdminResponse struct {
	IsAdmin bool `json:"is_admin"`
}
