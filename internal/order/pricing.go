package order

import (
	"github.com/shopspring/decimal"

	"github.com/hamrostore/hamrostore-api/internal/model"
)

// Totals is the priced result of a cart: grand total is always the sum of
// the other two.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// PriceLookup resolves a product id to its current unit price. The second
// return value reports whether the product exists.
type PriceLookup func(productID string) (decimal.Decimal, bool)

// ComputeTotals prices a cart against live product prices and the city fee
// table. A cart entry whose product cannot be resolved fails the whole
// computation rather than being silently priced at zero.
func ComputeTotals(entries []model.CartEntry, priceOf PriceLookup, city string, cityFees map[string]decimal.Decimal, defaultFee decimal.Decimal) (Totals, error) {
	subtotal := decimal.Zero
	for _, e := range entries {
		price, ok := priceOf(e.ProductID)
		if !ok {
			return Totals{}, &ProductGoneError{ProductID: e.ProductID}
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}

	fee, ok := cityFees[city]
	if !ok {
		fee = defaultFee
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		GrandTotal:  subtotal.Add(fee),
	}, nil
}
