package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ProductStatus string

const (
	ProductStatusPendingApproval ProductStatus = "pendingApproval"
	ProductStatusApproved        ProductStatus = "approved"
	ProductStatusRejected        ProductStatus = "rejected"
)

// MaxProductImages caps the image references attached to one product.
const MaxProductImages = 5

type Product struct {
	BaseModel
	Seller      Principal     `db:"seller" json:"seller"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"description" json:"description"`
	BasePrice   int64         `db:"base_price" json:"base_price"`
	Images      ImageRefs     `db:"images" json:"images"`
	Status      ProductStatus `db:"status" json:"status"`
	Variants    []Variant     `db:"-" json:"variants"` // product_variants table
}

type Variant struct {
	Size  Option[string] `db:"size" json:"size"`
	Color Option[string] `db:"color" json:"color"`
	Price int64          `db:"price" json:"price"`
	Stock int64          `db:"stock" json:"stock"`
}

// ImageRef points at a blob held by the external storage collaborator.
type ImageRef struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ImageRefs []ImageRef

func (r ImageRefs) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

func (r *ImageRefs) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("images: unsupported scan type %T", src)
	}
}

func (p *Product) IsApproved() bool {
	return p.Status == ProductStatusApproved
}

func (p *Product) OwnedBy(principal Principal) bool {
	return p.Seller == principal
}

func (p *Product) Variant(index int) (Variant, bool) {
	if index < 0 || index >= len(p.Variants) {
		return Variant{}, false
	}
	return p.Variants[index], true
}

// FindVariant returns the index of the variant with exactly these labels.
func (p *Product) FindVariant(size, color Option[string]) (int, bool) {
	for i, v := range p.Variants {
		if v.Size.Equal(size) && v.Color.Equal(color) {
			return i, true
		}
	}
	return -1, false
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Variants = append([]Variant(nil), p.Variants...)
	c.Images = append(ImageRefs(nil), p.Images...)
	return &c
}
