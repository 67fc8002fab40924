package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/domain"
)

// MinSliderCeiling is the lowest the price slider ever tops out at, and its
// ceiling for an empty catalog.
var MinSliderCeiling = decimal.NewFromInt(500)

type FacetSet struct {
	Brands   []string
	Types    []domain.ProductType
	MaxPrice decimal.Decimal
}

// Facets collects the sidebar options: brands and types in first-seen order and the
// slider ceiling, the highest price rounded up to a whole unit but never under
// MinSliderCeiling.
func Facets(products []domain.Product) FacetSet {
	fs := FacetSet{Brands: []string{}, Types: []domain.ProductType{}, MaxPrice: MinSliderCeiling}
	seenBrand := map[string]struct{}{}
	seenType := map[domain.ProductType]struct{}{}
	for _, p := range products {
		if _, ok := seenBrand[p.Brand]; !ok {
			seenBrand[p.Brand] = struct{}{}
			fs.Brands = append(fs.Brands, p.Brand)
		}
		if _, ok := seenType[p.Type]; !ok {
			seenType[p.Type] = struct{}{}
			fs.Types = append(fs.Types, p.Type)
		}
		if c := p.Price.Ceil(); c.GreaterThan(fs.MaxPrice) {
			fs.MaxPrice = c
		}
	}
	return fs
}

// FindQuickOrder resolves a quick-order entry by exact id or case-insensitive title.
func FindQuickOrder(products []domain.Product, input string) (*domain.Product, error) {
	q := strings.TrimSpace(input)
	if q == "" {
		return nil, domain.ErrNotFound
	}
	for i := range products {
		p := &products[i]
		if strconv.FormatInt(p.ID, 10) == q || strings.EqualFold(p.Title, q) {
			found := p.Clone()
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}
