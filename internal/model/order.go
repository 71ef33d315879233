package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCanceled  = "canceled"
	OrderStatusDelivered = "delivered"
)

const (
	PaymentMethodCOD   = "cod"
	PaymentMethodCard  = "card"
	PaymentMethodEsewa = "esewa"
)

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCanceled, OrderStatusDelivered:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodEsewa:
		return true
	}
	return false
}

type Order struct {
	ID             string          `db:"id" json:"id"`
	UserID         string          `db:"user_id" json:"user_id"`
	Status         string          `db:"status" json:"status"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	DeliveryFee    decimal.Decimal `db:"delivery_fee" json:"delivery_fee"`
	GrandTotal     decimal.Decimal `db:"grand_total" json:"grand_total"`
	PaymentMethod  string          `db:"payment_method" json:"payment_method"`
	CustomerName   string          `db:"customer_name" json:"customer_name"`
	CustomerEmail  string          `db:"customer_email" json:"customer_email"`
	ShippingStreet string          `db:"shipping_street" json:"shipping_street"`
	ShippingCity   string          `db:"shipping_city" json:"shipping_city"`
	PaidAt         *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	Items          []OrderItem     `db:"-" json:"items"`
}

// OrderItem snapshots a cart entry at checkout time. Name, image and unit
// price are frozen copies so later catalog edits do not alter past orders.
type OrderItem struct {
	OrderID   string          `db:"order_id" json:"-"`
	ProductID string          `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Name      string          `db:"name" json:"name"`
	ImageURL  *string         `db:"image_url" json:"image_url"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}
