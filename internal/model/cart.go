package model

// CartItem is one (product, variant) line of a buyer's cart.
type CartItem struct {
	ProductID    uint64 `db:"product_id" json:"product_id"`
	VariantIndex int    `db:"variant_index" json:"variant_index"`
	Quantity     int64  `db:"quantity" json:"quantity"`
}

type CartKey struct {
	ProductID    uint64
	VariantIndex int
}

func (c CartItem) Key() CartKey {
	return CartKey{ProductID: c.ProductID, VariantIndex: c.VariantIndex}
}
