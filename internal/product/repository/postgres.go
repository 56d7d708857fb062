package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
	"github.com/fekuna/omnipos-marketplace-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type variantRow struct {
	ProductID    uint64 `db:"product_id"`
	VariantIndex int    `db:"variant_index"`
	model.Variant
}

const productColumns = `id, seller, name, description, base_price, images, status, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO products (seller, name, description, base_price, images, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	err = tx.QueryRowxContext(ctx, query,
		p.Seller, p.Name, p.Description, p.BasePrice, p.Images, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return err
	}

	if err := insertVariants(ctx, tx, p.ID, p.Variants); err != nil {
		return err
	}
	return tx.Commit()
}

func insertVariants(ctx context.Context, tx *sqlx.Tx, productID uint64, variants []model.Variant) error {
	query := `
        INSERT INTO product_variants (product_id, variant_index, size, color, price, stock)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	for i, v := range variants {
		if _, err := tx.ExecContext(ctx, query, productID, i, v.Size, v.Color, v.Price, v.Stock); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	products := []model.Product{product}
	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f != nil && f.Seller != "" {
		conditions = append(conditions, "seller = :seller")
		args["seller"] = f.Seller
	}
	if f != nil && f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY id"
	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var products []model.Product
	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, err
	}
	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// attachVariants loads the variants of every product in one query.
func (r *PGRepository) attachVariants(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]uint64, len(products))
	byID := make(map[uint64]*model.Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		byID[products[i].ID] = &products[i]
		products[i].Variants = []model.Variant{}
	}

	query, args, err := sqlx.In(`
        SELECT product_id, variant_index, size, color, price, stock
        FROM product_variants
        WHERE product_id IN (?)
        ORDER BY product_id, variant_index
    `, ids)
	if err != nil {
		return err
	}

	var rows []variantRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range rows {
		p := byID[row.ProductID]
		p.Variants = append(p.Variants, row.Variant)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE products
        SET name = $1,
            description = $2,
            base_price = $3,
            images = $4,
            status = $5,
            updated_at = $6
        WHERE id = $7
    `
	res, err := tx.ExecContext(ctx, query, p.Name, p.Description, p.BasePrice, p.Images, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if err := expectOneRow(res, p.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	if err := insertVariants(ctx, tx, p.ID, p.Variants); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id uint64, from, to model.ProductStatus, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, at, id, from)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	// Nothing matched: tell a missing product apart from a status conflict.
	var current model.ProductStatus
	err = r.DB.GetContext(ctx, &current, `SELECT status FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.New(apperror.KindNotFound, "product %d", id)
	}
	if err != nil {
		return err
	}
	return apperror.New(apperror.KindInvalidTransition, "product %d is %s, not %s", id, current, from)
}

func (r *PGRepository) DecrementStock(ctx context.Context, productID uint64, variantIndex int, qty int64) error {
	query := `
        UPDATE product_variants v
        SET stock = v.stock - $1
        FROM products p
        WHERE p.id = v.product_id
          AND v.product_id = $2
          AND v.variant_index = $3
          AND v.stock >= $1
          AND p.status = 'approved'
    `
	res, err := r.DB.ExecContext(ctx, query, qty, productID, variantIndex)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.New(apperror.KindInsufficientStock, "product %d variant %d", productID, variantIndex)
	}
	return nil
}

func (r *PGRepository) IncrementStock(ctx context.Context, productID uint64, variantIndex int, qty int64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE product_variants SET stock = stock + $1 WHERE product_id = $2 AND variant_index = $3`,
		qty, productID, variantIndex)
	if err != nil {
		return err
	}
	return expectOneRow(res, productID)
}

func expectOneRow(res sql.Result, id uint64) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "product %d", id)
	}
	return nil
}
