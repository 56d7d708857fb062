package dto

import "github.com/fekuna/omnipos-marketplace-service/internal/model"

// OrderFilters narrows a listing. Seller matches orders with at least one
// item sold by that principal.
type OrderFilters struct {
	Buyer  model.Principal
	Seller model.Principal
}
