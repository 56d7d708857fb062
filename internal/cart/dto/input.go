package dto

import "github.com/fekuna/omnipos-marketplace-service/internal/model"

type CartItemInput struct {
	ProductID    uint64
	VariantIndex int
	Quantity     int64 `validate:"min=1"`
}

func (in *CartItemInput) Key() model.CartKey {
	return model.CartKey{ProductID: in.ProductID, VariantIndex: in.VariantIndex}
}
