package usecase

import (
	"context"

	"github.com/phenrril/skywholesale/internal/catalog"
	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/pricing"
)

type CartView struct {
	Items  []domain.CartItem
	Totals domain.OrderTotals
}

type CartUC struct {
	Cart     domain.CartRepo
	Products domain.ProductRepo
	Rules    pricing.Rules
}

// Add puts the catalog's current version of the product in the cart. Later
// catalog edits do not reach lines already in the cart.
func (uc *CartUC) Add(ctx context.Context, productID int64, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	return uc.Cart.Add(ctx, *p, qty)
}

func (uc *CartUC) Remove(ctx context.Context, productID int64) error {
	return uc.Cart.Remove(ctx, productID)
}

func (uc *CartUC) UpdateQuantity(ctx context.Context, productID int64, delta int) error {
	return uc.Cart.UpdateQuantity(ctx, productID, delta)
}

func (uc *CartUC) Clear(ctx context.Context) { uc.Cart.Clear(ctx) }

func (uc *CartUC) View(ctx context.Context) CartView {
	items := uc.Cart.Items(ctx)
	return CartView{Items: items, Totals: pricing.ComputeTotals(items, uc.Rules)}
}

// QuickOrder adds qty of the product matching input by id or exact title.
// A miss returns domain.ErrNotFound and leaves the cart as it was.
func (uc *CartUC) QuickOrder(ctx context.Context, input string, qty int) (*domain.Product, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	p, err := catalog.FindQuickOrder(uc.Products.List(ctx), input)
	if err != nil {
		return nil, err
	}
	if err := uc.Cart.Add(ctx, *p, qty); err != nil {
		return nil, err
	}
	return p, nil
}

// Count is the unit total shown on the cart icon.
func (uc *CartUC) Count(ctx context.Context) int { return uc.Cart.Count(ctx) }

// Checkout takes the cart's lines into a confirmation, emptying the cart in the
// same step so a concurrent add lands in either the order or the next cart.
func (uc *CartUC) Checkout(ctx context.Context) (*domain.Order, error) {
	items, err := uc.Cart.Drain(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	return &domain.Order{
		Number: domain.ConfirmationNumber,
		Status: domain.OrderStatusProcessing,
		Items:  items,
		Totals: pricing.ComputeTotals(items, uc.Rules),
	}, nil
}
