package services

import (
	"context"
	"log"

	"github.com/planware/keyscan/internal/config"
	"github.com/planware/keyscan/internal/core"
	"github.com/planware/keyscan/internal/core/scan_engine"
	"github.com/planware/keyscan/internal/models"
)

// ScanService runs complete scans: it parses the keyword configuration,
// clamps the context window, owns the spool lifecycle for the run and
// drives the orchestrator.
type ScanService struct {
	extractor core.DocumentExtractor
	cfg       *config.Config
}

func NewScanService(extractor core.DocumentExtractor, cfg *config.Config) *ScanService {
	return &ScanService{extractor: extractor, cfg: cfg}
}

// Scan executes one run. The spool is created fresh for this run and
// released on every exit path; nothing staged outlives the call.
func (s *ScanService) Scan(ctx context.Context, uploads []models.Upload, rawKeywords string, window int, progress core.ProgressFunc) (*models.ScanReport, error) {
	keywords := scan_engine.ParseKeywords(rawKeywords)
	if len(keywords) == 0 {
		return &models.ScanReport{}, core.ErrNoKeywords
	}
	window = scan_engine.ClampWindow(window, s.cfg.MinWindow, s.cfg.MaxWindow)

	spool, err := scan_engine.NewSpool(s.cfg.SpoolDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := spool.Close(); err != nil {
			log.Printf("scan: release spool: %v", err)
		}
	}()

	orch := scan_engine.NewOrchestrator(s.extractor, scan_engine.NewBatchIngestor(spool), progress)
	return orch.Run(ctx, uploads, keywords, window)
}

// HighlightRecords is the presentation pass: it returns a copy of the
// records with every keyword occurrence emphasized in its snippet. The
// originals stay raw.
func HighlightRecords(records []models.MatchRecord) []models.MatchRecord {
	out := make([]models.MatchRecord, len(records))
	for i, rec := range records {
		rec.Snippet = scan_engine.Highlight(rec.Snippet, rec.Keyword)
		out[i] = rec
	}
	return out
}
