package dto

import "github.com/shopspring/decimal"

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CartMutationInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartItem is a cart entry joined with the live product it references.
type CartItem struct {
	ProductID          string          `db:"product_id" json:"product_id"`
	Quantity           int             `db:"quantity" json:"quantity"`
	Name               string          `db:"name" json:"name"`
	Slug               string          `db:"slug" json:"slug"`
	ImageURL           *string         `db:"image_url" json:"image_url"`
	Price              decimal.Decimal `db:"price" json:"price"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage" json:"discount_percentage"`
	StockQuantity      int             `db:"stock_quantity" json:"stock_quantity"`
}
