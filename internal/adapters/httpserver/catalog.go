package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/domain"
)

type sortModeView struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

var sortModeList = []domain.SortMode{
	domain.SortPopularity, domain.SortPriceAsc, domain.SortPriceDesc,
	domain.SortNewest, domain.SortAlphaAsc, domain.SortAlphaDesc,
}

// GET /api/catalog?category=&q=&brand=&type=&min=&max=&sort=
func (s *Server) apiCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, 400, map[string]any{"error": "bad_request", "message": err.Error()})
		return
	}
	items := s.products.List(r.Context(), c)
	sorts := make([]sortModeView, 0, len(sortModeList))
	for _, m := range sortModeList {
		sorts = append(sorts, sortModeView{Slug: m.Slug(), Label: m.String()})
	}
	writeJSON(w, 200, map[string]any{
		"items":      productViews(items),
		"total":      len(items),
		"facets":     newFacetsView(s.products.Facets(r.Context())),
		"categories": domain.Categories(),
		"sorts":      sorts,
		"criteria": map[string]any{
			"category": c.Category,
			"q":        c.Query,
			"sort":     c.Sort.Slug(),
		},
	})
}

// criteriaFromQuery starts from the page defaults and narrows by whatever the
// query string sets. Repeated brand and type params are OR-ed.
func criteriaFromQuery(q url.Values) (domain.FilterCriteria, error) {
	c := domain.DefaultCriteria()
	cat, err := domain.ParseCategory(q.Get("category"))
	if err != nil {
		return c, err
	}
	c.Category = cat
	c.Query = q.Get("q")
	for _, b := range q["brand"] {
		if b = strings.TrimSpace(b); b != "" {
			c.Brands = append(c.Brands, b)
		}
	}
	for _, t := range q["type"] {
		if t = strings.TrimSpace(t); t != "" {
			c.Types = append(c.Types, domain.ProductType(t))
		}
	}
	if v := strings.TrimSpace(q.Get("min")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c, errors.New("min must be a number")
		}
		c.Price.Min = decimal.NewNullDecimal(d)
	}
	if v := strings.TrimSpace(q.Get("max")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c, errors.New("max must be a number")
		}
		c.Price.Max = decimal.NewNullDecimal(d)
	}
	sm, err := domain.ParseSortMode(q.Get("sort"))
	if err != nil {
		return c, err
	}
	c.Sort = sm
	return c, nil
}

type quickOrderReq struct {
	Input    string `json:"input"`
	Quantity int    `json:"quantity"`
}

// POST /api/catalog/quick-order {input, quantity}
func (s *Server) apiQuickOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req quickOrderReq
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", 400)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, err := s.cart.QuickOrder(r.Context(), req.Input, req.Quantity)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, 404, map[string]any{"error": "not_found", "message": domain.MsgProductNotFound})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, 200, map[string]any{
		"added":    newProductView(*p),
		"quantity": req.Quantity,
		"cart":     newCartView(s.cart.View(r.Context())),
	})
}
