package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/skywholesale/internal/domain"
)

var hundred = decimal.NewFromInt(100)

const BogoBadgeText = "BUY 1 GET 1 FREE"

// Validation separates blocking errors from advisory warnings.
type Validation struct {
	Errors   []domain.Issue
	Warnings []domain.Issue
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v *Validation) fail(msg string) {
	v.Errors = append(v.Errors, domain.Issue{Field: domain.FieldDiscount, Message: msg})
}

func (v *Validation) warn(msg string) {
	v.Warnings = append(v.Warnings, domain.Issue{Field: domain.FieldDiscount, Message: msg})
}

type Derivation struct {
	FinalPrice decimal.Decimal
	AutoBadges []domain.Badge
	Validation Validation
}

// DeriveFinalPrice applies d to base and produces the badges the discount implies.
// Out-of-range values are reported in Validation; the price is still computed and
// clamped at zero so the preview stays meaningful.
func DeriveFinalPrice(base decimal.Decimal, d domain.Discount) Derivation {
	res := Derivation{FinalPrice: base, AutoBadges: []domain.Badge{}}
	switch v := d.(type) {
	case nil, domain.NoDiscount:
	case domain.PercentOff:
		res.FinalPrice = clampZero(base.Mul(decimal.NewFromInt(1).Sub(v.Value.Div(hundred))))
		switch {
		case v.Value.IsNegative():
			res.Validation.fail(domain.MsgInvalidValue)
		case v.Value.GreaterThan(hundred):
			res.Validation.fail(domain.MsgPercentOver100)
		default:
			res.AutoBadges = append(res.AutoBadges, domain.Badge{Text: v.Value.String() + "% OFF", Color: domain.BadgeRed})
		}
	case domain.FixedOff:
		res.FinalPrice = clampZero(base.Sub(v.Value))
		if v.Value.IsNegative() {
			res.Validation.fail(domain.MsgInvalidValue)
			break
		}
		if v.Value.GreaterThan(base) {
			res.Validation.warn(domain.MsgDiscountExceeds)
		}
		res.AutoBadges = append(res.AutoBadges, domain.Badge{Text: "SAVE $" + v.Value.String(), Color: domain.BadgeRed})
	case domain.BuyOneGetOne:
		res.AutoBadges = append(res.AutoBadges, domain.Badge{Text: BogoBadgeText, Color: domain.BadgePurple})
	}
	return res
}

// ComposeBadges puts derived badges ahead of the author's own.
func ComposeBadges(auto, custom []domain.Badge) []domain.Badge {
	out := make([]domain.Badge, 0, len(auto)+len(custom))
	out = append(out, auto...)
	return append(out, custom...)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
