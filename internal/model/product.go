package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name               string          `db:"name" json:"name"`
	Slug               string          `db:"slug" json:"slug"`
	Description        *string         `db:"description" json:"description"`
	Price              decimal.Decimal `db:"price" json:"price"`
	Category           string          `db:"category" json:"category"`
	ImageURL           *string         `db:"image_url" json:"image_url"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage" json:"discount_percentage"`
	StockQuantity      int             `db:"stock_quantity" json:"stock_quantity"`
}

// InStock reports whether the requested quantity can currently be fulfilled.
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
