package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/skywholesale/internal/config"
	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	products *usecase.ProductUC
	cart     *usecase.CartUC

	maxImageBytes int64
}

func New(p *usecase.ProductUC, c *usecase.CartUC, maxImageBytes int64) http.Handler {
	if maxImageBytes <= 0 {
		maxImageBytes = config.DefaultMaxImageBytes
	}
	s := &Server{mux: http.NewServeMux(), products: p, cart: c, maxImageBytes: maxImageBytes}
	s.routes()
	return Chain(s.mux,
		Recovery,
		Logging,
		RequestID,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/catalog", s.apiCatalog)
	s.mux.HandleFunc("/api/catalog/quick-order", s.apiQuickOrder)

	// GET|POST /api/products · GET|PUT|DELETE /api/products/{id} · GET /api/products/{id}/form
	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)
	s.mux.HandleFunc("/api/products/preview", s.apiProductPreview)
	s.mux.HandleFunc("/api/products/image", s.apiProductImage)
	s.mux.HandleFunc("/api/badges/colors", s.apiBadgeColors)

	s.mux.HandleFunc("/admin/export/xlsx", s.handleAdminExportXLSX)
	s.mux.HandleFunc("/admin/export/csv", s.handleAdminExportCSV)
	s.mux.HandleFunc("/admin/import/xlsx", s.handleAdminImportXLSX)

	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/cart/update", s.apiCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.apiCartRemove)
	s.mux.HandleFunc("/api/cart/count", s.apiCartCount)
	s.mux.HandleFunc("/api/checkout", s.apiCheckout)
	s.mux.HandleFunc("/api/orders/track", s.apiOrderTracking)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"status": "ok", "products": len(s.products.Products.List(r.Context()))})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}

// writeError maps domain errors onto status codes. Anything unexpected is logged
// and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, 422, map[string]any{"error": "validation", "issues": issueViews(ve.Issues)})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, 404, map[string]any{"error": "not_found"})
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, 422, map[string]any{"error": "empty_cart", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeJSON(w, 422, map[string]any{"error": "invalid_quantity", "message": err.Error()})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("req_id", RequestIDFrom(r.Context())).Msg("request failed")
		writeJSON(w, 500, map[string]any{"error": "internal"})
	}
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil && id > 0
}
