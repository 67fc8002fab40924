package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryAll       Category = "All"
	CategorySnacks    Category = "Snacks"
	CategoryBeverages Category = "Beverages"
	CategoryStaples   Category = "Staples"
	CategoryCandy     Category = "Candy"
)

// Categories lists the sidebar entries in display order.
func Categories() []Category {
	return []Category{CategoryAll, CategorySnacks, CategoryBeverages, CategoryStaples, CategoryCandy}
}

// ParseCategory is case-insensitive; empty means All.
func ParseCategory(s string) (Category, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return CategoryAll, nil
	}
	for _, c := range Categories() {
		if strings.EqualFold(string(c), v) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type SortMode int

const (
	SortPopularity SortMode = iota
	SortPriceAsc
	SortPriceDesc
	SortNewest
	SortAlphaAsc
	SortAlphaDesc
)

var sortModes = []struct {
	mode  SortMode
	label string
	slug  string
}{
	{SortPopularity, "Popularity", "popularity"},
	{SortPriceAsc, "Price: Low to High", "price_asc"},
	{SortPriceDesc, "Price: High to Low", "price_desc"},
	{SortNewest, "Newest Arrivals", "newest"},
	{SortAlphaAsc, "Alphabetical: A-Z", "alpha_asc"},
	{SortAlphaDesc, "Alphabetical: Z-A", "alpha_desc"},
}

// String returns the storefront label.
func (m SortMode) String() string {
	for _, s := range sortModes {
		if s.mode == m {
			return s.label
		}
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

func (m SortMode) Slug() string {
	for _, s := range sortModes {
		if s.mode == m {
			return s.slug
		}
	}
	return ""
}

// ParseSortMode accepts either the label or the slug; empty means Popularity.
func ParseSortMode(s string) (SortMode, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return SortPopularity, nil
	}
	for _, sm := range sortModes {
		if strings.EqualFold(sm.label, v) || strings.EqualFold(sm.slug, v) {
			return sm.mode, nil
		}
	}
	return 0, fmt.Errorf("unknown sort mode %q", s)
}

// PriceRange is inclusive at both ends. An unset bound does not narrow.
type PriceRange struct {
	Min decimal.NullDecimal
	Max decimal.NullDecimal
}

func NewPriceRange(min, max decimal.Decimal) PriceRange {
	return PriceRange{Min: decimal.NewNullDecimal(min), Max: decimal.NewNullDecimal(max)}
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	if r.Min.Valid && price.LessThan(r.Min.Decimal) {
		return false
	}
	if r.Max.Valid && price.GreaterThan(r.Max.Decimal) {
		return false
	}
	return true
}

type FilterCriteria struct {
	Category Category
	Query    string
	Brands   []string
	Types    []ProductType
	Price    PriceRange
	Sort     SortMode
}

// DefaultPriceCeiling is the slider's initial upper bound.
var DefaultPriceCeiling = decimal.NewFromInt(10000)

// DefaultCriteria is what the catalog page starts with.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Category: CategoryAll,
		Price:    NewPriceRange(decimal.Zero, DefaultPriceCeiling),
		Sort:     SortPopularity,
	}
}
