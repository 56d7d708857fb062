package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Get(ctx context.Context, buyer model.Principal) ([]model.CartItem, error) {
	items := []model.CartItem{}
	query := `SELECT product_id, variant_index, quantity FROM cart_items WHERE buyer = $1 ORDER BY seq`
	if err := r.DB.SelectContext(ctx, &items, query, buyer); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) Add(ctx context.Context, buyer model.Principal, item model.CartItem) error {
	query := `
        INSERT INTO cart_items (buyer, product_id, variant_index, quantity)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (buyer, product_id, variant_index)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
    `
	_, err := r.DB.ExecContext(ctx, query, buyer, item.ProductID, item.VariantIndex, item.Quantity)
	return err
}

func (r *PGRepository) SetQuantity(ctx context.Context, buyer model.Principal, key model.CartKey, qty int64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE buyer = $2 AND product_id = $3 AND variant_index = $4`,
		qty, buyer, key.ProductID, key.VariantIndex)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "cart has no product %d variant %d", key.ProductID, key.VariantIndex)
	}
	return nil
}

func (r *PGRepository) Remove(ctx context.Context, buyer model.Principal, key model.CartKey) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE buyer = $1 AND product_id = $2 AND variant_index = $3`,
		buyer, key.ProductID, key.VariantIndex)
	return err
}

func (r *PGRepository) Clear(ctx context.Context, buyer model.Principal) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE buyer = $1`, buyer)
	return err
}
