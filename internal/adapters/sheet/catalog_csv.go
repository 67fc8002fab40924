package sheet

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/phenrril/skywholesale/internal/domain"
)

// catalogRow is one product in the flat layout both writers share.
type catalogRow struct {
	ID            string `csv:"id"`
	Brand         string `csv:"brand"`
	Title         string `csv:"title"`
	BasePrice     string `csv:"base_price"`
	Price         string `csv:"price"`
	DiscountType  string `csv:"discount_type"`
	DiscountValue string `csv:"discount_value"`
	Type          string `csv:"type"`
	UnitPriceText string `csv:"unit_price_text"`
	MOQ           string `csv:"moq"`
	Shipping      string `csv:"shipping"`
	ShippingIcon  string `csv:"shipping_icon"`
	Description   string `csv:"description"`
	Image         string `csv:"image"`
	CustomBadges  string `csv:"custom_badges"`
}

func newCatalogRow(p domain.Product) catalogRow {
	return catalogRow{
		ID:            strconv.FormatInt(p.ID, 10),
		Brand:         p.Brand,
		Title:         p.Title,
		BasePrice:     p.BasePrice.StringFixed(2),
		Price:         p.Price.StringFixed(2),
		DiscountType:  string(domain.DiscountKindOf(p.Discount)),
		DiscountValue: domain.DiscountValueString(p.Discount),
		Type:          string(p.Type),
		UnitPriceText: p.UnitPriceText,
		MOQ:           p.MOQ,
		Shipping:      p.Shipping,
		ShippingIcon:  p.ShippingIcon,
		Description:   p.Description,
		Image:         p.Image,
		CustomBadges:  formatBadges(p.CustomBadges),
	}
}

// values follows the header order.
func (r catalogRow) values() []any {
	return []any{
		r.ID, r.Brand, r.Title, r.BasePrice, r.Price, r.DiscountType, r.DiscountValue,
		r.Type, r.UnitPriceText, r.MOQ, r.Shipping, r.ShippingIcon, r.Description, r.Image, r.CustomBadges,
	}
}

// WriteCatalogCSV writes the same columns as WriteCatalog as CSV.
func WriteCatalogCSV(w io.Writer, products []domain.Product) error {
	rows := make([]*catalogRow, 0, len(products))
	for _, p := range products {
		r := newCatalogRow(p)
		rows = append(rows, &r)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
