package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamrostore/hamrostore-api/internal/model"
)

func feeTable() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"Kathmandu":  decimal.NewFromFloat(3.5),
		"Lalitpur":   decimal.NewFromFloat(3.5),
		"Bhaktapur":  decimal.NewFromFloat(3.5),
		"Pokhara":    decimal.NewFromFloat(4.0),
		"Biratnagar": decimal.NewFromFloat(4.5),
		"Butwal":     decimal.NewFromFloat(4.5),
	}
}

var defaultFee = decimal.NewFromFloat(5.0)

func fixedPrices(prices map[string]float64) PriceLookup {
	return func(id string) (decimal.Decimal, bool) {
		p, ok := prices[id]
		if !ok {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(p), true
	}
}

func TestComputeTotals_KnownCity(t *testing.T) {
	entries := []model.CartEntry{{ProductID: "P1", Quantity: 2}}
	lookup := fixedPrices(map[string]float64{"P1": 100})

	totals, err := ComputeTotals(entries, lookup, "Kathmandu", feeTable(), defaultFee)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.DeliveryFee.Equal(decimal.NewFromFloat(3.5)), "fee = %s", totals.DeliveryFee)
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromFloat(203.5)), "total = %s", totals.GrandTotal)
}

func TestComputeTotals_UnknownCityUsesDefaultFee(t *testing.T) {
	entries := []model.CartEntry{{ProductID: "P1", Quantity: 1}}
	lookup := fixedPrices(map[string]float64{"P1": 10})

	totals, err := ComputeTotals(entries, lookup, "Unknown City", feeTable(), defaultFee)
	require.NoError(t, err)

	assert.True(t, totals.DeliveryFee.Equal(decimal.NewFromFloat(5.0)), "fee = %s", totals.DeliveryFee)
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromFloat(15.0)), "total = %s", totals.GrandTotal)
}

func TestComputeTotals_MultipleEntries(t *testing.T) {
	entries := []model.CartEntry{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 3},
	}
	lookup := fixedPrices(map[string]float64{"P1": 19.99, "P2": 5.25})

	totals, err := ComputeTotals(entries, lookup, "Pokhara", feeTable(), defaultFee)
	require.NoError(t, err)

	// 2*19.99 + 3*5.25 = 55.73
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromFloat(55.73)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(totals.DeliveryFee)))
}

func TestComputeTotals_MissingProductFails(t *testing.T) {
	entries := []model.CartEntry{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "GONE", Quantity: 1},
	}
	lookup := fixedPrices(map[string]float64{"P1": 10})

	_, err := ComputeTotals(entries, lookup, "Kathmandu", feeTable(), defaultFee)
	require.Error(t, err)

	var gone *ProductGoneError
	require.ErrorAs(t, err, &gone)
	assert.Equal(t, "GONE", gone.ProductID)
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals, err := ComputeTotals(nil, fixedPrices(nil), "Butwal", feeTable(), defaultFee)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromFloat(4.5)))
}
