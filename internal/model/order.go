package model

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cashOnDelivery"
	PaymentUPI            PaymentMethod = "upi"
	PaymentCard           PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

type ShippingInfo struct {
	Name    string `db:"ship_name" json:"name" validate:"required"`
	Phone   string `db:"ship_phone" json:"phone" validate:"required"`
	Address string `db:"ship_address" json:"address" validate:"required"`
	City    string `db:"ship_city" json:"city" validate:"required"`
	State   string `db:"ship_state" json:"state" validate:"required"`
	Pincode string `db:"ship_pincode" json:"pincode" validate:"required"`
}

// OrderItem is frozen at placement time and never follows later catalog edits.
type OrderItem struct {
	ProductID    uint64         `db:"product_id" json:"product_id"`
	ProductName  string         `db:"product_name" json:"product_name"`
	Seller       Principal      `db:"seller" json:"seller"`
	VariantIndex int            `db:"variant_index" json:"variant_index"`
	VariantSize  Option[string] `db:"variant_size" json:"variant_size"`
	VariantColor Option[string] `db:"variant_color" json:"variant_color"`
	Quantity     int64          `db:"quantity" json:"quantity"`
	Price        int64          `db:"price" json:"price"`
}

func (i OrderItem) Subtotal() int64 {
	return i.Price * i.Quantity
}

type Order struct {
	BaseModel
	Buyer         Principal     `db:"buyer" json:"buyer"`
	Items         []OrderItem   `db:"-" json:"items"`
	TotalAmount   int64         `db:"total_amount" json:"total_amount"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"`
	ShippingInfo  `json:"shipping_info"`
	Status        OrderStatus `db:"status" json:"status"`
}

func SumItems(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// HasSeller reports whether any line of the order was sold by principal.
func (o *Order) HasSeller(principal Principal) bool {
	for _, it := range o.Items {
		if it.Seller == principal {
			return true
		}
	}
	return false
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}
