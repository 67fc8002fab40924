// Package pricing holds the cart totals calculation and the admin-side discount
// preview. Amounts stay unrounded; callers round when they render.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/domain"
)

// Rules are the order-level knobs. Both thresholds are strict: a subtotal must be
// above them to qualify.
type Rules struct {
	BulkDiscountThreshold decimal.Decimal
	BulkDiscountRate      decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultRules is the canonical rule set: 5% off above 500, free shipping above
// 1000, otherwise a flat 25, no tax.
func DefaultRules() Rules {
	return Rules{
		BulkDiscountThreshold: decimal.NewFromInt(500),
		BulkDiscountRate:      decimal.RequireFromString("0.05"),
		FreeShippingThreshold: decimal.NewFromInt(1000),
		FlatShippingFee:       decimal.NewFromInt(25),
		TaxRate:               decimal.Zero,
	}
}

// ComputeTotals prices a cart. An empty cart costs nothing, shipping included.
func ComputeTotals(items []domain.CartItem, r Rules) domain.OrderTotals {
	t := domain.OrderTotals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
	if len(items) == 0 {
		return t
	}
	for _, it := range items {
		t.Units += it.Quantity
		t.Subtotal = t.Subtotal.Add(it.LineTotal())
	}
	if t.Subtotal.GreaterThan(r.BulkDiscountThreshold) {
		t.Discount = t.Subtotal.Mul(r.BulkDiscountRate)
	}
	if !t.Subtotal.GreaterThan(r.FreeShippingThreshold) {
		t.Shipping = r.FlatShippingFee
	}
	// tax is charged on the discounted goods, not on shipping
	t.Tax = t.Subtotal.Sub(t.Discount).Mul(r.TaxRate)
	t.Total = t.Subtotal.Sub(t.Discount).Add(t.Shipping).Add(t.Tax)
	return t
}
