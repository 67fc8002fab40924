package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/skywholesale/internal/adapters/repo/memory"
	"github.com/phenrril/skywholesale/internal/adapters/sheet"
	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/pricing"
	"github.com/phenrril/skywholesale/internal/usecase"
)

func seeded() []domain.Product {
	p := func(id int64, title, brand, price string, typ domain.ProductType, icon string) domain.Product {
		d := decimal.RequireFromString(price)
		return domain.Product{ID: id, Title: title, Brand: brand, Price: d, BasePrice: d, Type: typ, ShippingIcon: icon,
			Badges: []domain.Badge{{Text: "IN STOCK", Color: domain.BadgeGreen}}}
	}
	return []domain.Product{
		p(1, "Blue Raspberry Rock Candy", "Sky Blue Essentials", "45.00", domain.TypeCase, "local_shipping"),
		p(2, "Roasted Salted Almonds", "Artisanal Crunch", "128.50", domain.TypeCase, "eco"),
		p(3, "Classic Cream Soda Pack", "Vintage Sweets Co.", "32.20", domain.TypeCase, "wine_bar"),
	}
}

func newTestServer(t *testing.T) (http.Handler, *usecase.CartUC) {
	t.Helper()
	products := memory.NewProductRepo(seeded())
	puc := &usecase.ProductUC{Products: products}
	cuc := &usecase.CartUC{Cart: memory.NewCartRepo(), Products: products, Rules: pricing.DefaultRules()}
	return New(puc, cuc, 1024), cuc
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthAndRequestID(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, 200, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.EqualValues(t, 3, decode(t, rec)["products"])
}

func TestCatalog_FiltersAndSorts(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/catalog?sort=price_desc&max=100", nil)
	require.Equal(t, 200, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 2, body["total"])
	items := body["items"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, "45.00", first["price"])

	badge := first["badges"].([]any)[0].(map[string]any)
	assert.Equal(t, "bg-green-100", badge["bg"])
	assert.Equal(t, "text-green-700", badge["text_class"])

	facets := body["facets"].(map[string]any)
	assert.Equal(t, "500.00", facets["max_price"])

	rec = do(t, h, http.MethodGet, "/api/catalog?category=Beverages", nil)
	assert.EqualValues(t, 1, decode(t, rec)["total"])

	rec = do(t, h, http.MethodGet, "/api/catalog?sort=cheapest", nil)
	assert.Equal(t, 400, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/catalog", nil)
	assert.Equal(t, 405, rec.Code)
}

func TestProducts_CreatePreviewEditDelete(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/products/preview", map[string]any{
		"title": "Gift Box", "price": 100, "discount": map[string]any{"type": "percent", "value": "20"},
	})
	require.Equal(t, 200, rec.Code)
	pv := decode(t, rec)
	assert.Equal(t, "80.00", pv["final_price"])

	rec = do(t, h, http.MethodPost, "/api/products", map[string]any{
		"title": "Gift Box", "price": "100", "discount": map[string]any{"type": "fixed", "value": 150},
		"custom_badges": []map[string]any{{"text": "HOLIDAY", "color": "teal"}},
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())
	created := decode(t, rec)
	prod := created["product"].(map[string]any)
	assert.Equal(t, "0.00", prod["price"])
	assert.Len(t, created["warnings"], 1)
	id := int64(prod["id"].(float64))

	rec = do(t, h, http.MethodGet, "/api/products/"+jsonNum(id)+"/form", nil)
	require.Equal(t, 200, rec.Code)
	form := decode(t, rec)
	assert.Equal(t, "100", form["price"])

	rec = do(t, h, http.MethodPut, "/api/products/"+jsonNum(id), map[string]any{"title": "Gift Box", "price": "90"})
	require.Equal(t, 200, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/products/"+jsonNum(id), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/products/"+jsonNum(id), nil)
	assert.Equal(t, 404, rec.Code)
}

func TestProducts_ValidationIs422(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/products", map[string]any{"price": "x"})
	require.Equal(t, 422, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "validation", body["error"])
	assert.Len(t, body["issues"], 2)

	rec = do(t, h, http.MethodPost, "/api/products", map[string]any{
		"title": "x", "price": "1", "custom_badges": []map[string]any{{"text": "HOT", "color": "magenta"}},
	})
	assert.Equal(t, 422, rec.Code)
}

func TestCart_FlowThroughCheckout(t *testing.T) {
	h, cart := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/cart", map[string]any{"product_id": 2, "quantity": 4})
	require.Equal(t, 200, rec.Code)
	totals := decode(t, rec)["totals"].(map[string]any)
	assert.Equal(t, "514.00", totals["subtotal"])
	assert.Equal(t, "25.70", totals["discount"])
	assert.Equal(t, "25.00", totals["shipping"])

	rec = do(t, h, http.MethodPost, "/api/cart/update", map[string]any{"product_id": 2, "delta": -10})
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 1, cart.View(context.Background()).Items[0].Quantity)

	rec = do(t, h, http.MethodPost, "/api/catalog/quick-order", map[string]any{"input": "nope"})
	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, domain.MsgProductNotFound, decode(t, rec)["message"])

	rec = do(t, h, http.MethodPost, "/api/catalog/quick-order", map[string]any{"input": "1", "quantity": 2})
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 3, cart.View(context.Background()).Totals.Units)

	rec = do(t, h, http.MethodGet, "/api/cart/count", nil)
	require.Equal(t, 200, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["count"])

	rec = do(t, h, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, 201, rec.Code)
	order := decode(t, rec)
	assert.Equal(t, domain.ConfirmationNumber, order["number"])
	assert.Empty(t, cart.View(context.Background()).Items)

	rec = do(t, h, http.MethodPost, "/api/checkout", nil)
	assert.Equal(t, 422, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/cart/remove", map[string]any{"product_id": 2})
	assert.Equal(t, 404, rec.Code)
}

func TestOrderTracking(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/orders/track?number="+domain.ConfirmationNumber, nil)
	require.Equal(t, 200, rec.Code)
	steps := decode(t, rec)["tracking"].([]any)
	require.Len(t, steps, 4)
	assert.Equal(t, true, steps[1].(map[string]any)["done"])
	assert.Equal(t, false, steps[2].(map[string]any)["done"])

	rec = do(t, h, http.MethodGet, "/api/orders/track?number=SKY-1", nil)
	assert.Equal(t, 404, rec.Code)
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProductImage(t *testing.T) {
	h, _ := newTestServer(t)

	body, ct := multipartBody(t, "image", "x.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/products/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Contains(t, decode(t, rec)["image"], "data:image/png;base64,")

	body, ct = multipartBody(t, "image", "big.png", "image/png", make([]byte, 2048))
	req = httptest.NewRequest(http.MethodPost, "/api/products/image", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, 422, rec.Code)
}

func TestProductImage_BodyOverLimitIsSizeError(t *testing.T) {
	h, _ := newTestServer(t)

	for name, contentLength := range map[string]int64{"declared": 0, "chunked": -1} {
		t.Run(name, func(t *testing.T) {
			body, ct := multipartBody(t, "image", "huge.png", "image/png", make([]byte, 2<<20))
			req := httptest.NewRequest(http.MethodPost, "/api/products/image", body)
			req.Header.Set("Content-Type", ct)
			if contentLength < 0 {
				req.ContentLength = contentLength
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, 422, rec.Code, rec.Body.String())
			issues := decode(t, rec)["issues"].([]any)
			require.Len(t, issues, 1)
			issue := issues[0].(map[string]any)
			assert.Equal(t, domain.FieldImage, issue["field"])
			assert.Equal(t, domain.MsgImageTooLarge, issue["message"])
		})
	}
}

func TestAdminXLSX_ExportThenImport(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/admin/export/xlsx", nil)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))

	forms, bad, err := sheet.ReadCatalog(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, bad)
	require.Len(t, forms, 3)

	body, ct := multipartBody(t, "file", "catalog.xlsx", xlsxContentType, rec.Body.Bytes())
	req := httptest.NewRequest(http.MethodPost, "/admin/import/xlsx", body)
	req.Header.Set("Content-Type", ct)
	imp := httptest.NewRecorder()
	h.ServeHTTP(imp, req)
	require.Equal(t, 200, imp.Code, imp.Body.String())
	rep := decode(t, imp)
	assert.EqualValues(t, 3, rep["updated"])
	assert.EqualValues(t, 0, rep["created"])
}

func TestAdminImport_ReportsValidationFailures(t *testing.T) {
	h, _ := newTestServer(t)
	var sh bytes.Buffer
	require.NoError(t, sheet.WriteCatalog(&sh, []domain.Product{
		{ID: 1, Title: "Blue Raspberry Rock Candy", BasePrice: decimal.NewFromInt(40), Price: decimal.NewFromInt(40), Discount: domain.NoDiscount{}},
		{Title: "", BasePrice: decimal.NewFromInt(3), Price: decimal.NewFromInt(3), Discount: domain.NoDiscount{}},
	}))

	body, ct := multipartBody(t, "file", "catalog.xlsx", xlsxContentType, sh.Bytes())
	req := httptest.NewRequest(http.MethodPost, "/admin/import/xlsx", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	rep := decode(t, rec)
	assert.EqualValues(t, 1, rep["updated"])
	failed := rep["failed"].([]any)
	require.Len(t, failed, 1)
	assert.Equal(t, true, failed[0].(map[string]any)["validation"])
}

func TestBadgeColors(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/badges/colors", nil)
	require.Equal(t, 200, rec.Code)
	colors := decode(t, rec)["colors"].([]any)
	require.Len(t, colors, len(domain.BadgeColors()))
	first := colors[0].(map[string]any)
	assert.Equal(t, domain.BadgeRed.String(), first["color"])
	assert.Equal(t, "bg-red-100", first["bg"])

	assert.Equal(t, 405, do(t, h, http.MethodPost, "/api/badges/colors", nil).Code)
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }), Recovery, Logging, RequestID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 500, rec.Code)
}

func TestLooseString(t *testing.T) {
	var v struct {
		A looseString `json:"a"`
		B looseString `json:"b"`
		C looseString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.50, "b": "7", "c": null}`), &v))
	assert.Equal(t, looseString("12.50"), v.A)
	assert.Equal(t, looseString("7"), v.B)
	assert.Equal(t, looseString(""), v.C)
}

func jsonNum(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestAdminExportCSV(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/admin/export/csv", nil)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Roasted Salted Almonds")
}
