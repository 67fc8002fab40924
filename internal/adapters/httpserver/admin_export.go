package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/skywholesale/internal/adapters/sheet"
	"github.com/phenrril/skywholesale/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /admin/export/xlsx downloads the catalog in store order.
func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	var buf bytes.Buffer
	if err := sheet.WriteCatalog(&buf, s.products.Products.List(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=catalog_%s.xlsx", time.Now().Format("20060102")))
	w.WriteHeader(200)
	_, _ = w.Write(buf.Bytes())
}

// GET /admin/export/csv is the same layout as the spreadsheet, as CSV.
func (s *Server) handleAdminExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	var buf bytes.Buffer
	if err := sheet.WriteCatalogCSV(&buf, s.products.Products.List(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=products.csv")
	w.WriteHeader(200)
	_, _ = w.Write(buf.Bytes())
}

type importFailureView struct {
	Row        int    `json:"row,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message"`
	Validation bool   `json:"validation"`
}

// POST /admin/import/xlsx (multipart field "file"). Rows go through the same
// validation as the editor; bad rows are reported, the rest are saved.
func (s *Server) handleAdminImportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(25 << 20); err != nil {
		http.Error(w, "bad form", 400)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", 400)
		return
	}
	defer file.Close()

	forms, rowErrs, err := sheet.ReadCatalog(file)
	if err != nil {
		writeJSON(w, 400, map[string]any{"error": "bad_sheet", "message": err.Error()})
		return
	}
	rep := s.products.Import(r.Context(), forms)

	failed := make([]importFailureView, 0, len(rowErrs)+len(rep.Failed))
	for _, re := range rowErrs {
		failed = append(failed, importFailureView{Row: re.Row, Message: re.Err.Error()})
	}
	for _, f := range rep.Failed {
		failed = append(failed, importFailureView{Title: f.Title, Message: f.Err.Error(), Validation: domain.IsValidation(f.Err)})
	}
	log.Info().Int("created", rep.Created).Int("updated", rep.Updated).Int("failed", len(failed)).Msg("catalog import")
	writeJSON(w, 200, map[string]any{"created": rep.Created, "updated": rep.Updated, "failed": failed})
}
