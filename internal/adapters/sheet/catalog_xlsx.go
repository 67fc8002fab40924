package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/usecase"
)

const SheetName = "Catalog"

var header = []string{
	"id", "brand", "title", "base_price", "price", "discount_type", "discount_value",
	"type", "unit_price_text", "moq", "shipping", "shipping_icon", "description", "image", "custom_badges",
}

// WriteCatalog writes one row per product under a fixed header. Uploaded data URI
// images go out as usecase.StoredImage, so importing the sheet back keeps them.
// Any other value longer than a cell can hold is an error.
func WriteCatalog(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &row); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := newCatalogRow(p)
		if strings.HasPrefix(r.Image, "data:") {
			r.Image = usecase.StoredImage
		}
		vals := r.values()
		for c, v := range vals {
			if s, ok := v.(string); ok && utf8.RuneCountInString(s) > excelize.TotalCellChars {
				return fmt.Errorf("row %d: %s exceeds %d characters", i+2, header[c], excelize.TotalCellChars)
			}
		}
		if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// RowError points at a spreadsheet row that could not be read.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }

// ReadCatalog reads the layout WriteCatalog produces, from the Catalog sheet or the
// first sheet. Columns are matched by header name, so their order may differ.
func ReadCatalog(r io.Reader) ([]usecase.ProductForm, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, nil, fmt.Errorf("xlsx has no sheets")
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return []usecase.ProductForm{}, nil, nil
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, nil, fmt.Errorf("missing title column")
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	forms := []usecase.ProductForm{}
	var bad []RowError
	for n, row := range rows[1:] {
		line := n + 2
		if strings.Join(row, "") == "" {
			continue
		}
		var id int64
		if v := get(row, "id"); v != "" {
			if id, err = strconv.ParseInt(v, 10, 64); err != nil {
				bad = append(bad, RowError{Row: line, Err: fmt.Errorf("id %q: %w", v, err)})
				continue
			}
		}
		badges, err := parseBadges(get(row, "custom_badges"))
		if err != nil {
			bad = append(bad, RowError{Row: line, Err: err})
			continue
		}
		forms = append(forms, usecase.ProductForm{
			ID:            id,
			Brand:         get(row, "brand"),
			Title:         get(row, "title"),
			Price:         get(row, "base_price"),
			Type:          get(row, "type"),
			UnitPriceText: get(row, "unit_price_text"),
			MOQ:           get(row, "moq"),
			Shipping:      get(row, "shipping"),
			ShippingIcon:  get(row, "shipping_icon"),
			Image:         get(row, "image"),
			Description:   get(row, "description"),
			DiscountKind:  get(row, "discount_type"),
			DiscountValue: get(row, "discount_value"),
			CustomBadges:  badges,
		})
	}
	return forms, bad, nil
}

// badges are stored as TEXT:Color pairs separated by semicolons
func formatBadges(bs []domain.Badge) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		parts = append(parts, b.Text+":"+b.Color.String())
	}
	return strings.Join(parts, ";")
}

func parseBadges(s string) ([]domain.Badge, error) {
	out := []domain.Badge{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.LastIndex(part, ":")
		if i <= 0 {
			return nil, fmt.Errorf("badge %q: want TEXT:Color", part)
		}
		c, err := domain.ParseBadgeColor(part[i+1:])
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Badge{Text: strings.TrimSpace(part[:i]), Color: c})
	}
	return out, nil
}
