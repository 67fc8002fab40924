package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	TypeCase    ProductType = "Case"
	TypeUnit    ProductType = "Unit"
	TypeBox     ProductType = "Box"
	TypePallet  ProductType = "Pallet"
	TypeBulkBox ProductType = "Bulk Box"
	TypeBag     ProductType = "Bag"
)

// Product is replaced as a whole on edit; never mutate one held by a store.
type Product struct {
	ID            int64
	Brand         string
	Title         string
	Price         decimal.Decimal
	BasePrice     decimal.Decimal
	Discount      Discount
	Type          ProductType
	UnitPriceText string
	MOQ           string
	Shipping      string
	ShippingIcon  string
	Image         string
	Description   string
	Badges        []Badge
	CustomBadges  []Badge
}

// Clone copies the badge slices so the copy can be handed out safely.
func (p Product) Clone() Product {
	p.Badges = append([]Badge(nil), p.Badges...)
	p.CustomBadges = append([]Badge(nil), p.CustomBadges...)
	if p.Discount == nil {
		p.Discount = NoDiscount{}
	}
	return p
}

type ProductRepo interface {
	Add(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) []Product
	Search(ctx context.Context, c FilterCriteria) []Product
}
