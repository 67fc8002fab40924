package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/skywholesale/internal/domain"
	"github.com/phenrril/skywholesale/internal/usecase"
)

// GET lists the whole catalog in store order · POST creates a product.
func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items := s.products.Products.List(r.Context())
		writeJSON(w, 200, map[string]any{"items": productViews(items), "total": len(items)})
	case http.MethodPost:
		s.saveProduct(w, r, 0)
	default:
		http.Error(w, "method", 405)
	}
}

// /api/products/{id} and /api/products/{id}/form
func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	parts := strings.Split(rest, "/")
	id, ok := parseID(parts[0])
	if !ok || len(parts) > 2 {
		http.NotFound(w, r)
		return
	}
	if len(parts) == 2 {
		if parts[1] != "form" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method", 405)
			return
		}
		f, err := s.products.FormFor(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, 200, newFormView(f))
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, 200, newProductView(*p))
	case http.MethodPut:
		s.saveProduct(w, r, id)
	case http.MethodDelete:
		if err := s.products.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		log.Info().Int64("product_id", id).Msg("product deleted")
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) saveProduct(w http.ResponseWriter, r *http.Request, id int64) {
	var req productReq
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", 400)
		return
	}
	f, err := req.form(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.products.Submit(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	code := 200
	if res.Created {
		code = 201
	}
	log.Info().Int64("product_id", res.Product.ID).Bool("created", res.Created).Int("warnings", len(res.Warnings)).Msg("product saved")
	writeJSON(w, code, map[string]any{
		"product":  newProductView(res.Product),
		"created":  res.Created,
		"warnings": issueViews(res.Warnings),
	})
}

// POST /api/products/preview recomputes price and badges for an unsaved form.
func (s *Server) apiProductPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req productReq
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", 400)
		return
	}
	f, err := req.form(0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, 200, newPreviewView(s.products.Preview(f)))
}

// POST /api/products/image (multipart field "image") returns a data URI the
// editor stores as the product image.
func (s *Server) apiProductImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	limit := s.maxImageBytes + 1<<20
	tooLarge := domain.NewValidationError(domain.FieldImage, domain.MsgImageTooLarge)
	if r.ContentLength > limit {
		writeError(w, r, tooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	file, hdr, err := r.FormFile("image")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, r, tooLarge)
			return
		}
		http.Error(w, "missing image", 400)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, s.maxImageBytes+1))
	if err != nil {
		http.Error(w, "read error", 400)
		return
	}
	uri, err := usecase.ImageDataURI(hdr.Header.Get("Content-Type"), data, s.maxImageBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, 200, map[string]any{"image": uri, "bytes": len(data)})
}

type badgeColorView struct {
	Color     string `json:"color"`
	BgClass   string `json:"bg"`
	TextClass string `json:"text_class"`
}

// GET /api/badges/colors is the palette the editor offers for custom badges.
func (s *Server) apiBadgeColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	colors := domain.BadgeColors()
	out := make([]badgeColorView, 0, len(colors))
	for _, c := range colors {
		cls := badgeClasses[c]
		out = append(out, badgeColorView{Color: c.String(), BgClass: cls[0], TextClass: cls[1]})
	}
	writeJSON(w, 200, map[string]any{"colors": out})
}
