package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/hamrostore/hamrostore-api/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, username, email, password_hash, is_admin, created_at)
        VALUES (:id, :username, :email, :password_hash, :is_admin, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE lower(username) = lower($1) LIMIT 1`, username)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.DB.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at DESC`)
	return users, err
}

// Delete relies on ON DELETE CASCADE for cart and wishlist rows.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *PGRepository) GetCart(ctx context.Context, userID string) ([]model.CartEntry, error) {
	var entries []model.CartEntry
	err := r.DB.SelectContext(ctx, &entries,
		`SELECT * FROM cart_items WHERE user_id = $1 ORDER BY product_id`, userID)
	return entries, err
}

// UpsertCartEntry keeps one row per (user, product); re-adding replaces the
// quantity.
func (r *PGRepository) UpsertCartEntry(ctx context.Context, entry *model.CartEntry) error {
	query := `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES (:user_id, :product_id, :quantity)
        ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PGRepository) RemoveCartEntry(ctx context.Context, userID, productID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

func (r *PGRepository) GetWishlist(ctx context.Context, userID string) ([]model.WishlistEntry, error) {
	var entries []model.WishlistEntry
	err := r.DB.SelectContext(ctx, &entries,
		`SELECT * FROM wishlist_items WHERE user_id = $1 ORDER BY added_at`, userID)
	return entries, err
}

func (r *PGRepository) HasWishlistEntry(ctx context.Context, userID, productID string) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) AddWishlistEntry(ctx context.Context, entry *model.WishlistEntry) error {
	query := `
        INSERT INTO wishlist_items (user_id, product_id, added_at)
        VALUES (:user_id, :product_id, :added_at)
        ON CONFLICT (user_id, product_id) DO NOTHING
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PGRepository) RemoveWishlistEntry(ctx context.Context, userID, productID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}
