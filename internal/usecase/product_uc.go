package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/catalog"
	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/pricing"
)

const (
	DefaultType         = domain.TypeCase
	DefaultShipping     = "Ships 24h"
	DefaultShippingIcon = "local_shipping"
	placeholderImageURL = "https://placehold.co/600x400/png?text="

	// StoredImage in the image field keeps whatever image the product already has.
	// Exports write it in place of uploaded images too large for a cell.
	StoredImage = "(stored image)"
)

// ProductForm is the admin editor as submitted: text fields plus the badges the
// author added by hand. ID zero means a new product.
type ProductForm struct {
	ID            int64
	Brand         string
	Title         string
	Price         string
	Type          string
	UnitPriceText string
	MOQ           string
	Shipping      string
	ShippingIcon  string
	Image         string
	Description   string
	DiscountKind  string
	DiscountValue string
	CustomBadges  []domain.Badge
}

type Preview struct {
	BasePrice  decimal.Decimal
	FinalPrice decimal.Decimal
	Badges     []domain.Badge
	Validation pricing.Validation
}

type SubmitResult struct {
	Product  domain.Product
	Created  bool
	Warnings []domain.Issue
}

type ProductUC struct {
	Products domain.ProductRepo
	// Now stamps new product ids; time.Now when nil.
	Now func() time.Time

	mu     sync.Mutex
	lastID int64
}

func (uc *ProductUC) List(ctx context.Context, c domain.FilterCriteria) []domain.Product {
	return uc.Products.Search(ctx, c)
}

func (uc *ProductUC) Facets(ctx context.Context) catalog.FacetSet {
	return catalog.Facets(uc.Products.List(ctx))
}

func (uc *ProductUC) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) Delete(ctx context.Context, id int64) error {
	return uc.Products.Delete(ctx, id)
}

// Preview is the live price and badge preview shown while the form is edited.
// A missing or malformed price previews as zero.
func (uc *ProductUC) Preview(f ProductForm) Preview {
	base, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		base = decimal.Zero
	}
	pv := Preview{BasePrice: base, FinalPrice: base, Badges: customBadges(f.CustomBadges)}
	d, err := domain.ParseDiscount(f.DiscountKind, f.DiscountValue)
	if err != nil {
		pv.Validation.Errors = append(pv.Validation.Errors, issuesOf(err)...)
		return pv
	}
	der := pricing.DeriveFinalPrice(base, d)
	pv.FinalPrice = der.FinalPrice
	pv.Badges = pricing.ComposeBadges(der.AutoBadges, pv.Badges)
	pv.Validation = der.Validation
	return pv
}

// Submit validates the form, derives price and badges and stores the product.
// Blocking problems come back as *domain.ValidationError; warnings ride along
// with the saved product.
func (uc *ProductUC) Submit(ctx context.Context, f ProductForm) (*SubmitResult, error) {
	var issues []domain.Issue
	title := strings.TrimSpace(f.Title)
	if title == "" {
		issues = append(issues, domain.Issue{Field: domain.FieldTitle, Message: domain.MsgRequired})
	}
	base, priceIssue := parsePrice(f.Price)
	if priceIssue != nil {
		issues = append(issues, *priceIssue)
	}
	d, err := domain.ParseDiscount(f.DiscountKind, f.DiscountValue)
	if err != nil {
		issues = append(issues, issuesOf(err)...)
	}
	var der pricing.Derivation
	if err == nil {
		der = pricing.DeriveFinalPrice(base, d)
		issues = append(issues, der.Validation.Errors...)
	}
	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	custom := customBadges(f.CustomBadges)
	p := domain.Product{
		ID:            f.ID,
		Brand:         strings.TrimSpace(f.Brand),
		Title:         title,
		Price:         der.FinalPrice,
		BasePrice:     base,
		Discount:      d,
		Type:          domain.ProductType(strings.TrimSpace(f.Type)),
		UnitPriceText: f.UnitPriceText,
		MOQ:           f.MOQ,
		Shipping:      strings.TrimSpace(f.Shipping),
		ShippingIcon:  strings.TrimSpace(f.ShippingIcon),
		Image:         strings.TrimSpace(f.Image),
		Description:   f.Description,
		Badges:        pricing.ComposeBadges(der.AutoBadges, custom),
		CustomBadges:  custom,
	}
	if p.Type == "" {
		p.Type = DefaultType
	}
	if p.Shipping == "" {
		p.Shipping = DefaultShipping
	}
	if p.ShippingIcon == "" {
		p.ShippingIcon = DefaultShippingIcon
	}
	if p.Image == StoredImage {
		p.Image = ""
		if p.ID != 0 {
			if old, err := uc.Products.FindByID(ctx, p.ID); err == nil {
				p.Image = old.Image
			}
		}
	}
	if p.Image == "" {
		p.Image = placeholderImageURL + strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
	}

	res := &SubmitResult{Warnings: der.Validation.Warnings}
	if p.ID == 0 {
		p.ID = uc.nextID(ctx)
		if err := uc.Products.Add(ctx, p); err != nil {
			return nil, err
		}
		res.Created = true
	} else if err := uc.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	res.Product = p
	return res, nil
}

// FormFor loads a stored product back into the editor. The price field carries the
// base price and only the hand-made badges come back, so derived ones are rebuilt
// on the next submit.
func (uc *ProductUC) FormFor(ctx context.Context, id int64) (ProductForm, error) {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return ProductForm{}, err
	}
	return ProductForm{
		ID:            p.ID,
		Brand:         p.Brand,
		Title:         p.Title,
		Price:         p.BasePrice.String(),
		Type:          string(p.Type),
		UnitPriceText: p.UnitPriceText,
		MOQ:           p.MOQ,
		Shipping:      p.Shipping,
		ShippingIcon:  p.ShippingIcon,
		Image:         p.Image,
		Description:   p.Description,
		DiscountKind:  string(domain.DiscountKindOf(p.Discount)),
		DiscountValue: domain.DiscountValueString(p.Discount),
		CustomBadges:  append([]domain.Badge(nil), p.CustomBadges...),
	}, nil
}

// nextID hands out creation-time milliseconds, bumped past any id already issued
// or stored so two products made in the same millisecond stay distinct.
func (uc *ProductUC) nextID(ctx context.Context) int64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}
	id := now().UnixMilli()
	if id <= uc.lastID {
		id = uc.lastID + 1
	}
	for {
		if _, err := uc.Products.FindByID(ctx, id); err != nil {
			break
		}
		id++
	}
	uc.lastID = id
	return id
}

func parsePrice(raw string) (decimal.Decimal, *domain.Issue) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Zero, &domain.Issue{Field: domain.FieldPrice, Message: domain.MsgRequired}
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, &domain.Issue{Field: domain.FieldPrice, Message: domain.MsgInvalidValue}
	}
	return d, nil
}

func customBadges(in []domain.Badge) []domain.Badge {
	out := make([]domain.Badge, 0, len(in))
	for _, b := range in {
		b.Text = strings.TrimSpace(b.Text)
		if b.Text == "" {
			continue
		}
		out = append(out, b)
	}
	return out
}

func issuesOf(err error) []domain.Issue {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Issues
	}
	return []domain.Issue{{Message: err.Error()}}
}
