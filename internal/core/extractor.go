package core

import "context"

// DocumentExtractor converts one opaque document payload into plain text.
//
// Implementations must join per-page text with a single newline in page
// order; a page with no extractable text contributes an empty string, so
// page count survives the join. The contentType hint selects the parsing
// strategy.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (string, error)
}

// ProgressFunc is invoked after each document completes, success or
// failure, with a monotonically increasing processed count and the name
// of the document just finished.
type ProgressFunc func(processed, total int, label string)
