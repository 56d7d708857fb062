package dto

import "github.com/fekuna/omnipos-marketplace-service/internal/model"

// ReservedLine is one decremented cart line together with the product and
// variant exactly as they were read under the lock.
type ReservedLine struct {
	Item    model.CartItem
	Product model.Product
	Variant model.Variant
}

// Reservation is the set of decrements made by one placement.
type Reservation struct {
	Lines []ReservedLine
}

// Total is the sum of variant price times quantity over all lines. Reserve
// refuses lines whose total would overflow.
func (r *Reservation) Total() int64 {
	var total int64
	for _, l := range r.Lines {
		total += l.Variant.Price * l.Item.Quantity
	}
	return total
}
