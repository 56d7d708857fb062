package dto

import "github.com/fekuna/omnipos-marketplace-service/internal/model"

type VariantInput struct {
	Size  model.Option[string]
	Color model.Option[string]
	Price int64 `validate:"min=0"`
	Stock int64 `validate:"min=0"`
}

// ProductInput is shared by submit and update; both replace the whole product.
type ProductInput struct {
	Name        string `validate:"required"`
	Description string
	BasePrice   int64            `validate:"min=0"`
	Variants    []VariantInput   `validate:"min=1,dive"`
	Images      []model.ImageRef `validate:"max=5"`
}

func (in *ProductInput) ToVariants() []model.Variant {
	variants := make([]model.Variant, len(in.Variants))
	for i, v := range in.Variants {
		variants[i] = model.Variant{Size: v.Size, Color: v.Color, Price: v.Price, Stock: v.Stock}
	}
	return variants
}
