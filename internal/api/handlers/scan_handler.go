package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/planware/keyscan/internal/config"
	"github.com/planware/keyscan/internal/core"
	"github.com/planware/keyscan/internal/core/scan_engine"
	"github.com/planware/keyscan/internal/export"
	"github.com/planware/keyscan/internal/models"
	"github.com/planware/keyscan/internal/services"
)

type ScanHandler struct {
	scanSvc *services.ScanService
	cfg     *config.Config
}

func NewScanHandler(scanSvc *services.ScanService, cfg *config.Config) *ScanHandler {
	return &ScanHandler{scanSvc: scanSvc, cfg: cfg}
}

// scanRecordView is one record as rendered to the client: the raw
// snippet plus the emphasized view.
type scanRecordView struct {
	models.MatchRecord
	Highlighted string `json:"highlighted"`
}

type scanResponse struct {
	Status           string                   `json:"status"` // ok | no_documents | no_matches
	Keywords         []string                 `json:"keywords"`
	Window           int                      `json:"window"`
	Records          []scanRecordView         `json:"records"`
	Failures         []models.DocumentFailure `json:"failures,omitempty"`
	Warnings         []models.IngestWarning   `json:"warnings,omitempty"`
	DocumentsScanned int                      `json:"documents_scanned"`
}

// Scan handles a multipart batch upload, runs the scan and responds with
// JSON or, when format=csv, the downloadable result CSV.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var uploads []models.Upload
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid file %s", header.Filename), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf("read file %s: %v", header.Filename, err), http.StatusBadRequest)
			return
		}
		uploads = append(uploads, models.Upload{Name: filepath.Base(header.Filename), Data: data})
	}

	rawKeywords := r.FormValue("keywords")
	if rawKeywords == "" {
		rawKeywords = h.cfg.DefaultKeywords
	}

	window := h.cfg.DefaultWindow
	if v := r.FormValue("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "window must be an integer", http.StatusBadRequest)
			return
		}
		window = n
	}

	scanCtx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	progress := func(processed, total int, label string) {
		log.Printf("scan: processed %d/%d documents (%s)", processed, total, label)
	}

	report, err := h.scanSvc.Scan(scanCtx, uploads, rawKeywords, window, progress)

	status := "ok"
	switch {
	case errors.Is(err, core.ErrNoKeywords):
		http.Error(w, core.ErrNoKeywords.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, core.ErrNoDocuments):
		status = "no_documents"
	case errors.Is(err, core.ErrNoMatches):
		status = "no_matches"
	case err != nil:
		log.Printf("scan failed: %v", err)
		http.Error(w, fmt.Sprintf("scan failed: %v", err), http.StatusInternalServerError)
		return
	}

	if r.FormValue("format") == "csv" {
		h.writeCSV(w, report)
		return
	}

	records := make([]scanRecordView, 0, len(report.Records))
	for _, rec := range report.Records {
		records = append(records, scanRecordView{
			MatchRecord: rec,
			Highlighted: scan_engine.Highlight(rec.Snippet, rec.Keyword),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scanResponse{
		Status:           status,
		Keywords:         report.Keywords,
		Window:           report.Window,
		Records:          records,
		Failures:         report.Failures,
		Warnings:         report.Warnings,
		DocumentsScanned: report.DocumentsScanned,
	})
}

// writeCSV streams the result set as a downloadable CSV. Rows carry the
// emphasized snippets, mirroring the displayed table.
func (h *ScanHandler) writeCSV(w http.ResponseWriter, report *models.ScanReport) {
	data, err := export.ResultsCSV(services.HighlightRecords(report.Records))
	if err != nil {
		http.Error(w, fmt.Sprintf("export failed: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ResultsFileName))
	w.Write(data)
}

// Defaults reports the keyword set and window bounds the UI should
// prefill.
func (h *ScanHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"keywords":   scan_engine.ParseKeywords(h.cfg.DefaultKeywords),
		"window":     h.cfg.DefaultWindow,
		"min_window": h.cfg.MinWindow,
		"max_window": h.cfg.MaxWindow,
	})
}

// Healthz is the liveness probe.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
