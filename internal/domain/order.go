package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	Product  Product
	Quantity int
}

func (it CartItem) LineTotal() decimal.Decimal {
	return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type CartRepo interface {
	Add(ctx context.Context, p Product, qty int) error
	Remove(ctx context.Context, productID int64) error
	UpdateQuantity(ctx context.Context, productID int64, delta int) error
	Clear(ctx context.Context)
	Items(ctx context.Context) []CartItem
	Count(ctx context.Context) int
	// Drain returns the lines and empties the cart in one step.
	Drain(ctx context.Context) ([]CartItem, error)
}

// OrderTotals are unrounded; round only when rendering.
type OrderTotals struct {
	Units    int
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// ConfirmationNumber is display data only; no order record is kept.
const ConfirmationNumber = "SKY-10293847"

type Order struct {
	Number string
	Status OrderStatus
	Items  []CartItem
	Totals OrderTotals
}

type TrackingStep struct {
	Status OrderStatus
	Label  string
	Done   bool
}

// Tracking returns the fixed progress shown on the tracking page.
func (o Order) Tracking() []TrackingStep {
	steps := []TrackingStep{
		{Status: OrderStatusPlaced, Label: "Order Placed"},
		{Status: OrderStatusProcessing, Label: "Processing"},
		{Status: OrderStatusShipped, Label: "Shipped"},
		{Status: OrderStatusDelivered, Label: "Delivered"},
	}
	for i := range steps {
		steps[i].Done = true
		if steps[i].Status == o.Status {
			break
		}
	}
	return steps
}
