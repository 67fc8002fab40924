package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	DiscountNone    DiscountKind = "none"
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
	DiscountBogo    DiscountKind = "bogo"
)

// Discount is closed: only the four variants below implement it.
type Discount interface {
	Kind() DiscountKind
	discount()
}

type NoDiscount struct{}

// PercentOff takes Value percent off the base price.
type PercentOff struct{ Value decimal.Decimal }

// FixedOff takes Value currency units off the base price.
type FixedOff struct{ Value decimal.Decimal }

// BuyOneGetOne leaves the price alone; it only adds a badge.
type BuyOneGetOne struct{}

func (NoDiscount) Kind() DiscountKind   { return DiscountNone }
func (PercentOff) Kind() DiscountKind   { return DiscountPercent }
func (FixedOff) Kind() DiscountKind     { return DiscountFixed }
func (BuyOneGetOne) Kind() DiscountKind { return DiscountBogo }

func (NoDiscount) discount()   {}
func (PercentOff) discount()   {}
func (FixedOff) discount()     {}
func (BuyOneGetOne) discount() {}

// ParseDiscount builds a Discount from the editor's kind selector and value field.
// An empty value on percent or fixed means no discount yet. Range checks are left
// to the pricing deriver; only malformed numbers fail here.
func ParseDiscount(kind, raw string) (Discount, error) {
	k := DiscountKind(strings.ToLower(strings.TrimSpace(kind)))
	v := strings.TrimSpace(raw)
	switch k {
	case "", DiscountNone:
		return NoDiscount{}, nil
	case DiscountBogo:
		return BuyOneGetOne{}, nil
	case DiscountPercent, DiscountFixed:
		if v == "" {
			return NoDiscount{}, nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, NewValidationError(FieldDiscount, MsgInvalidValue)
		}
		if k == DiscountPercent {
			return PercentOff{Value: d}, nil
		}
		return FixedOff{Value: d}, nil
	}
	return nil, NewValidationError(FieldDiscount, fmt.Sprintf("unknown discount type %q", kind))
}

// DiscountValueString is the value field shown when editing d.
func DiscountValueString(d Discount) string {
	switch v := d.(type) {
	case PercentOff:
		return v.Value.String()
	case FixedOff:
		return v.Value.String()
	default:
		return ""
	}
}

// DiscountKindOf treats nil as none.
func DiscountKindOf(d Discount) DiscountKind {
	if d == nil {
		return DiscountNone
	}
	return d.Kind()
}
