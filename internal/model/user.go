package model

import "time"

type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CartEntry holds at most one row per (user, product); quantity is always >= 1.
// Setting a quantity to zero removes the row instead of storing it.
type CartEntry struct {
	UserID    string `db:"user_id" json:"-"`
	ProductID string `db:"product_id" json:"product_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

type WishlistEntry struct {
	UserID    string    `db:"user_id" json:"-"`
	ProductID string    `db:"product_id" json:"product_id"`
	AddedAt   time.Time `db:"added_at" json:"added_at"`
}
