package dto

import "github.com/fekuna/omnipos-marketplace-service/internal/model"

// ProductFilters narrows a listing. Zero values match everything.
type ProductFilters struct {
	Seller model.Principal     `json:"seller,omitempty"`
	Status model.ProductStatus `json:"status,omitempty"`
}
