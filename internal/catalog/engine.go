// Package catalog derives the storefront's product view from the catalog and the
// shopper's filter criteria. Everything here is pure and leaves its inputs alone.
package catalog

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/phenrril/skywholesale/internal/domain"
)

var categoryMatchers = map[domain.Category]func(domain.Product) bool{
	domain.CategorySnacks: func(p domain.Product) bool {
		return p.Type == domain.TypeBox || p.Type == domain.TypeBag
	},
	domain.CategoryBeverages: func(p domain.Product) bool {
		return p.Type == domain.TypeCase && p.ShippingIcon == "wine_bar"
	},
	domain.CategoryCandy: func(p domain.Product) bool {
		return containsFold(p.Title, "candy") || containsFold(p.Description, "candy")
	},
}

// FilterAndSort narrows products by category, search, brand, type and price, in that
// order, then sorts the survivors stably. No match yields an empty, non-nil slice.
func FilterAndSort(products []domain.Product, c domain.FilterCriteria) []domain.Product {
	tokens := strings.Fields(strings.ToLower(c.Query))
	match := categoryMatchers[c.Category]

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if match != nil && !match(p) {
			continue
		}
		if len(tokens) > 0 && !matchesTokens(p, tokens) {
			continue
		}
		if len(c.Brands) > 0 && !slices.Contains(c.Brands, p.Brand) {
			continue
		}
		if len(c.Types) > 0 && !slices.Contains(c.Types, p.Type) {
			continue
		}
		if !c.Price.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, c.Sort)
	return out
}

func matchesTokens(p domain.Product, tokens []string) bool {
	hay := strings.ToLower(p.Title + " " + p.Brand + " " + p.Description + " " + strconv.FormatInt(p.ID, 10))
	for _, t := range tokens {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

func sortProducts(list []domain.Product, mode domain.SortMode) {
	switch mode {
	case domain.SortPriceAsc:
		slices.SortStableFunc(list, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(list, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case domain.SortNewest:
		slices.SortStableFunc(list, func(a, b domain.Product) int {
			switch {
			case a.ID > b.ID:
				return -1
			case a.ID < b.ID:
				return 1
			}
			return 0
		})
	case domain.SortAlphaAsc, domain.SortAlphaDesc:
		// collators keep internal buffers, so one per call
		col := collate.New(language.English)
		desc := mode == domain.SortAlphaDesc
		slices.SortStableFunc(list, func(a, b domain.Product) int {
			if desc {
				return col.CompareString(b.Title, a.Title)
			}
			return col.CompareString(a.Title, b.Title)
		})
	}
}
