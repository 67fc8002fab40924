package httpserver

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/catalog"
	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/usecase"
)

// badgeClasses resolves the symbolic palette to the storefront's CSS classes.
var badgeClasses = map[domain.BadgeColor][2]string{
	domain.BadgeRed:     {"bg-red-100", "text-red-700"},
	domain.BadgeGreen:   {"bg-green-100", "text-green-700"},
	domain.BadgeBlue:    {"bg-blue-100", "text-blue-700"},
	domain.BadgeOrange:  {"bg-orange-100", "text-orange-800"},
	domain.BadgePurple:  {"bg-purple-100", "text-purple-700"},
	domain.BadgeGray:    {"bg-slate-100", "text-slate-700"},
	domain.BadgeTeal:    {"bg-teal-100", "text-teal-700"},
	domain.BadgePrimary: {"bg-primary", "text-white"},
	domain.BadgeOutline: {"bg-white border border-slate-200", "text-slate-700"},
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

type badgeView struct {
	Text      string `json:"text"`
	Color     string `json:"color"`
	BgClass   string `json:"bg"`
	TextClass string `json:"text_class"`
}

func badgeViews(bs []domain.Badge) []badgeView {
	out := make([]badgeView, 0, len(bs))
	for _, b := range bs {
		cls := badgeClasses[b.Color]
		out = append(out, badgeView{Text: b.Text, Color: b.Color.String(), BgClass: cls[0], TextClass: cls[1]})
	}
	return out
}

type discountView struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type productView struct {
	ID            int64        `json:"id"`
	Brand         string       `json:"brand"`
	Title         string       `json:"title"`
	Price         string       `json:"price"`
	BasePrice     string       `json:"base_price"`
	Discount      discountView `json:"discount"`
	Type          string       `json:"type"`
	UnitPriceText string       `json:"unit_price_text"`
	MOQ           string       `json:"moq"`
	Shipping      string       `json:"shipping"`
	ShippingIcon  string       `json:"shipping_icon"`
	Image         string       `json:"image"`
	Description   string       `json:"description"`
	Badges        []badgeView  `json:"badges"`
	CustomBadges  []badgeView  `json:"custom_badges"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:            p.ID,
		Brand:         p.Brand,
		Title:         p.Title,
		Price:         money(p.Price),
		BasePrice:     money(p.BasePrice),
		Discount:      discountView{Type: string(domain.DiscountKindOf(p.Discount)), Value: domain.DiscountValueString(p.Discount)},
		Type:          string(p.Type),
		UnitPriceText: p.UnitPriceText,
		MOQ:           p.MOQ,
		Shipping:      p.Shipping,
		ShippingIcon:  p.ShippingIcon,
		Image:         p.Image,
		Description:   p.Description,
		Badges:        badgeViews(p.Badges),
		CustomBadges:  badgeViews(p.CustomBadges),
	}
}

func productViews(ps []domain.Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, newProductView(p))
	}
	return out
}

type facetsView struct {
	Brands   []string `json:"brands"`
	Types    []string `json:"types"`
	MaxPrice string   `json:"max_price"`
}

func newFacetsView(f catalog.FacetSet) facetsView {
	types := make([]string, 0, len(f.Types))
	for _, t := range f.Types {
		types = append(types, string(t))
	}
	return facetsView{Brands: f.Brands, Types: types, MaxPrice: money(f.MaxPrice)}
}

type totalsView struct {
	Units    int    `json:"units"`
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func newTotalsView(t domain.OrderTotals) totalsView {
	return totalsView{
		Units:    t.Units,
		Subtotal: money(t.Subtotal),
		Discount: money(t.Discount),
		Shipping: money(t.Shipping),
		Tax:      money(t.Tax),
		Total:    money(t.Total),
	}
}

type cartItemView struct {
	Product   productView `json:"product"`
	Quantity  int         `json:"quantity"`
	LineTotal string      `json:"line_total"`
}

func cartItemViews(items []domain.CartItem) []cartItemView {
	out := make([]cartItemView, 0, len(items))
	for _, it := range items {
		out = append(out, cartItemView{Product: newProductView(it.Product), Quantity: it.Quantity, LineTotal: money(it.LineTotal())})
	}
	return out
}

type cartView struct {
	Items  []cartItemView `json:"items"`
	Totals totalsView     `json:"totals"`
}

func newCartView(v usecase.CartView) cartView {
	return cartView{Items: cartItemViews(v.Items), Totals: newTotalsView(v.Totals)}
}

type issueView struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func issueViews(is []domain.Issue) []issueView {
	out := make([]issueView, 0, len(is))
	for _, i := range is {
		out = append(out, issueView{Field: i.Field, Message: i.Message})
	}
	return out
}

type previewView struct {
	BasePrice  string      `json:"base_price"`
	FinalPrice string      `json:"final_price"`
	Badges     []badgeView `json:"badges"`
	Errors     []issueView `json:"errors"`
	Warnings   []issueView `json:"warnings"`
}

func newPreviewView(p usecase.Preview) previewView {
	return previewView{
		BasePrice:  money(p.BasePrice),
		FinalPrice: money(p.FinalPrice),
		Badges:     badgeViews(p.Badges),
		Errors:     issueViews(p.Validation.Errors),
		Warnings:   issueViews(p.Validation.Warnings),
	}
}

// looseString takes either a JSON string or a bare number, so prices can be
// posted as 45.5 or "45.50".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	*s = looseString(b)
	return nil
}

type badgeReq struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

type productReq struct {
	Brand         string      `json:"brand"`
	Title         string      `json:"title"`
	Price         looseString `json:"price"`
	Type          string      `json:"type"`
	UnitPriceText string      `json:"unit_price_text"`
	MOQ           string      `json:"moq"`
	Shipping      string      `json:"shipping"`
	ShippingIcon  string      `json:"shipping_icon"`
	Image         string      `json:"image"`
	Description   string      `json:"description"`
	Discount      discountReq `json:"discount"`
	CustomBadges  []badgeReq  `json:"custom_badges"`
}

type discountReq struct {
	Type  string      `json:"type"`
	Value looseString `json:"value"`
}

func (req productReq) form(id int64) (usecase.ProductForm, error) {
	badges := make([]domain.Badge, 0, len(req.CustomBadges))
	for _, b := range req.CustomBadges {
		c, err := domain.ParseBadgeColor(b.Color)
		if err != nil {
			return usecase.ProductForm{}, domain.NewValidationError(domain.FieldBadge, err.Error())
		}
		badges = append(badges, domain.Badge{Text: b.Text, Color: c})
	}
	return usecase.ProductForm{
		ID:            id,
		Brand:         req.Brand,
		Title:         req.Title,
		Price:         string(req.Price),
		Type:          req.Type,
		UnitPriceText: req.UnitPriceText,
		MOQ:           req.MOQ,
		Shipping:      req.Shipping,
		ShippingIcon:  req.ShippingIcon,
		Image:         req.Image,
		Description:   req.Description,
		DiscountKind:  req.Discount.Type,
		DiscountValue: string(req.Discount.Value),
		CustomBadges:  badges,
	}, nil
}

type formView struct {
	ID           int64        `json:"id"`
	Brand        string       `json:"brand"`
	Title        string       `json:"title"`
	Price        string       `json:"price"`
	Type         string       `json:"type"`
	UnitPrice    string       `json:"unit_price_text"`
	MOQ          string       `json:"moq"`
	Shipping     string       `json:"shipping"`
	ShippingIcon string       `json:"shipping_icon"`
	Image        string       `json:"image"`
	Description  string       `json:"description"`
	Discount     discountView `json:"discount"`
	CustomBadges []badgeView  `json:"custom_badges"`
}

func newFormView(f usecase.ProductForm) formView {
	return formView{
		ID:           f.ID,
		Brand:        f.Brand,
		Title:        f.Title,
		Price:        f.Price,
		Type:         f.Type,
		UnitPrice:    f.UnitPriceText,
		MOQ:          f.MOQ,
		Shipping:     f.Shipping,
		ShippingIcon: f.ShippingIcon,
		Image:        f.Image,
		Description:  f.Description,
		Discount:     discountView{Type: f.DiscountKind, Value: f.DiscountValue},
		CustomBadges: badgeViews(f.CustomBadges),
	}
}
