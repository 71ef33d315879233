package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price" binding:"required"`
	Category           string          `json:"category"`
	ImageURL           string          `json:"image_url"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StockQuantity      int             `json:"stock_quantity"`
}

type UpdateProductInput struct {
	ID                 string          `json:"-"`
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price" binding:"required"`
	Category           string          `json:"category"`
	ImageURL           string          `json:"image_url"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StockQuantity      int             `json:"stock_quantity"`
}

type ProductFilters struct {
	Category    string `form:"category" json:"category"`
	SearchQuery string `form:"q" json:"q"`
	SortBy      string `form:"sort_by" json:"sort_by"`
	SortOrder   string `form:"sort_order" json:"sort_order"`
	Page        int    `form:"page" json:"page"`
	PageSize    int    `form:"page_size" json:"page_size"`
}
