package scan_engine

import (
	"context"
	"log"
	"os"

	"code.sajari.com/docconv"

	"github.com/planware/keyscan/internal/core"
	"github.com/planware/keyscan/internal/models"
)

// State tracks where a scan run is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateIngesting
	StateScanning
	StateReporting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIngesting:
		return "ingesting"
	case StateScanning:
		return "scanning"
	case StateReporting:
		return "reporting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Orchestrator drives one scan run: ingest uploads, extract each staged
// document, match every keyword and accumulate records in (document,
// keyword, occurrence) order. One unreadable document never aborts the
// batch; its failure is recorded and the run moves on.
type Orchestrator struct {
	extractor core.DocumentExtractor
	ingestor  *BatchIngestor
	progress  core.ProgressFunc
	state     State
}

func NewOrchestrator(extractor core.DocumentExtractor, ingestor *BatchIngestor, progress core.ProgressFunc) *Orchestrator {
	if progress == nil {
		progress = func(int, int, string) {}
	}
	return &Orchestrator{
		extractor: extractor,
		ingestor:  ingestor,
		progress:  progress,
		state:     StateIdle,
	}
}

func (o *Orchestrator) State() State { return o.state }

// Run executes the full pipeline for one batch of uploads. The returned
// report always carries whatever warnings and failures accumulated.
// ErrNoKeywords, ErrNoDocuments and ErrNoMatches are informational
// outcomes, returned alongside the report rather than instead of it.
// Documents are processed strictly one at a time in ingestion order;
// every record for document N lands before any record for document N+1.
func (o *Orchestrator) Run(ctx context.Context, uploads []models.Upload, keywords []string, window int) (*models.ScanReport, error) {
	report := &models.ScanReport{Keywords: keywords, Window: window}

	if len(keywords) == 0 {
		o.state = StateIdle
		return report, core.ErrNoKeywords
	}

	o.state = StateIngesting
	docs, warnings, err := o.ingestor.Ingest(ctx, uploads)
	if err != nil {
		o.state = StateFailed
		return nil, err
	}
	report.Warnings = warnings

	if len(docs) == 0 {
		o.state = StateIdle
		return report, core.ErrNoDocuments
	}

	o.state = StateScanning
	total := len(docs)
	for i, doc := range docs {
		// Documents are independent units of work, so between two of
		// them is the one safe place to honor cancellation.
		if err := ctx.Err(); err != nil {
			o.state = StateFailed
			return nil, err
		}
		o.scanOne(ctx, doc, keywords, window, report)
		o.progress(i+1, total, doc.Name)
	}
	report.DocumentsScanned = total

	o.state = StateReporting
	defer func() { o.state = StateIdle }()

	if len(report.Records) == 0 {
		return report, core.ErrNoMatches
	}
	return report, nil
}

// scanOne extracts one staged document and appends a record per snippet
// for every keyword. Extraction failures become a DocumentFailure entry;
// the caller keeps going.
func (o *Orchestrator) scanOne(ctx context.Context, doc models.Document, keywords []string, window int, report *models.ScanReport) {
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		log.Printf("scan: read staged payload for %s: %v", doc.Name, err)
		report.Failures = append(report.Failures, models.DocumentFailure{File: doc.Name, Reason: err.Error()})
		return
	}

	text, err := o.extractor.Extract(ctx, data, docconv.MimeTypeByExtension(doc.Name))
	if err != nil {
		extErr := &core.ExtractionError{File: doc.Name, Err: err}
		log.Printf("scan: %v", extErr)
		report.Failures = append(report.Failures, models.DocumentFailure{File: doc.Name, Reason: extErr.Error()})
		return
	}

	for _, kw := range keywords {
		for _, snippet := range FindSnippets(text, kw, window) {
			report.Records = append(report.Records, models.MatchRecord{File: doc.Name, Keyword: kw, Snippet: snippet})
		}
	}
}
