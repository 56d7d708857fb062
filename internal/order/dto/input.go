package dto

import "github.com/fekuna/omnipos-marketplace-service/internal/model"

type PlaceOrderInput struct {
	ShippingInfo  model.ShippingInfo
	PaymentMethod model.PaymentMethod
}
