package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/order"
	"github.com/hamrostore/hamrostore-api/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// reserveStockTx conditionally decrements stock for one line item inside tx.
// The WHERE guard makes two concurrent checkouts against the last unit
// impossible to both succeed; a zero row count means the product vanished or
// stock ran out, and the live quantity is read back for the error message.
func reserveStockTx(ctx context.Context, tx *sqlx.Tx, item *model.OrderItem) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`, item.Quantity, item.ProductID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var available int
		err := tx.GetContext(ctx, &available,
			`SELECT stock_quantity FROM products WHERE id = $1`, item.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return &order.ProductGoneError{ProductID: item.ProductID}
		}
		if err != nil {
			return err
		}
		return &order.InsufficientStockError{
			ProductID: item.ProductID,
			Name:      item.Name,
			Available: available,
			Requested: item.Quantity,
		}
	}
	return nil
}

func restoreStockTx(ctx context.Context, tx *sqlx.Tx, item *model.OrderItem) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = NOW()
		WHERE id = $2
	`, item.Quantity, item.ProductID)
	return err
}

func (r *PGRepository) CreateWithCartClear(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range o.Items {
		if err := reserveStockTx(ctx, tx, &o.Items[i]); err != nil {
			return err
		}
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, status, subtotal, delivery_fee, grand_total,
			payment_method, customer_name, customer_email,
			shipping_street, shipping_city, created_at
		)
		VALUES (
			:id, :user_id, :status, :subtotal, :delivery_fee, :grand_total,
			:payment_method, :customer_name, :customer_email,
			:shipping_street, :shipping_city, :created_at
		)
	`, o)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, name, image_url, unit_price)
			VALUES (:order_id, :product_id, :quantity, :name, :image_url, :unit_price)
		`, item)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PGRepository) FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY product_id`, orderID)
	return items, err
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.SelectContext(ctx, &orders,
		`SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, orders)
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &orders, args); err != nil {
		return nil, 0, err
	}

	orders, err = r.attachItems(ctx, orders)
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *PGRepository) attachItems(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	query, args, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var items []model.OrderItem
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	byOrder := make(map[string][]model.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *PGRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET paid_at = $1 WHERE id = $2`, paidAt, id)
	return err
}

// CancelWithRestock restores every line item's stock and flips the status in
// one transaction. A partial outcome would violate stock conservation, so
// neither write lands without the other.
func (r *PGRepository) CancelWithRestock(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range o.Items {
		if err := restoreStockTx(ctx, tx, &o.Items[i]); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, model.OrderStatusCanceled, o.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) DeleteWithRestock(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range o.Items {
		if err := restoreStockTx(ctx, tx, &o.Items[i]); err != nil {
			return err
		}
	}

	// order_items rows cascade with the order.
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, o.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return err
}
