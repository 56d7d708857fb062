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
	"github.com/fekuna/omnipos-marketplace-service/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type itemRow struct {
	OrderID  uint64 `db:"order_id"`
	Position int    `db:"position"`
	model.OrderItem
}

const orderColumns = `id, buyer, total_amount, payment_method, ship_name, ship_phone, ship_address,
        ship_city, ship_state, ship_pincode, status, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO orders (
            buyer, total_amount, payment_method, ship_name, ship_phone, ship_address,
            ship_city, ship_state, ship_pincode, status, created_at, updated_at
        )
        VALUES (
            :buyer, :total_amount, :payment_method, :ship_name, :ship_phone, :ship_address,
            :ship_city, :ship_state, :ship_pincode, :status, :created_at, :updated_at
        )
        RETURNING id
    `
	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	if err := stmt.QueryRowxContext(ctx, o).Scan(&o.ID); err != nil {
		return err
	}

	itemQuery := `
        INSERT INTO order_items (
            order_id, position, product_id, product_name, seller, variant_index,
            variant_size, variant_color, quantity, price
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	for i, it := range o.Items {
		_, err := tx.ExecContext(ctx, itemQuery,
			o.ID, i, it.ProductID, it.ProductName, it.Seller, it.VariantIndex,
			it.VariantSize, it.VariantColor, it.Quantity, it.Price)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	orders := []model.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f != nil && f.Buyer != "" {
		conditions = append(conditions, "buyer = :buyer")
		args["buyer"] = f.Buyer
	}
	if f != nil && f.Seller != "" {
		conditions = append(conditions, "id IN (SELECT order_id FROM order_items WHERE seller = :seller)")
		args["seller"] = f.Seller
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT " + orderColumns + " FROM orders" + whereClause + " ORDER BY created_at DESC, id DESC"
	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	orders := []model.Order{}
	if err := nstmt.SelectContext(ctx, &orders, args); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uint64, len(orders))
	byID := make(map[uint64]*model.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		byID[orders[i].ID] = &orders[i]
	}

	query, args, err := sqlx.In(`
        SELECT order_id, position, product_id, product_name, seller, variant_index,
               variant_size, variant_color, quantity, price
        FROM order_items
        WHERE order_id IN (?)
        ORDER BY order_id, position
    `, ids)
	if err != nil {
		return err
	}

	var rows []itemRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range rows {
		o := byID[row.OrderID]
		o.Items = append(o.Items, row.OrderItem)
	}
	return nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id uint64, from, to model.OrderStatus, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
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

	var current model.OrderStatus
	err = r.DB.GetContext(ctx, &current, `SELECT status FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.New(apperror.KindNotFound, "order %d", id)
	}
	if err != nil {
		return err
	}
	return apperror.New(apperror.KindInvalidTransition, "order %d is %s, not %s", id, current, from)
}
