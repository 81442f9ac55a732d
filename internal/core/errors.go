package core

import (
	"errors"
	"fmt"
)

// Informational outcomes surfaced to the caller as states, not crashes.
var (
	// ErrNoKeywords indicates the configured keyword list was empty after
	// parsing.
	ErrNoKeywords = errors.New("no keywords configured")

	// ErrNoDocuments indicates ingestion produced zero scannable documents.
	ErrNoDocuments = errors.New("no documents found")

	// ErrNoMatches indicates documents and keywords were valid but no
	// occurrence was found anywhere.
	ErrNoMatches = errors.New("no keywords found in the scanned documents")
)

// ExtractionError reports that a single document could not be converted
// to text. Recovered locally: the document contributes zero records and
// the batch continues.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ArchiveError reports that an archive upload could not be opened or
// enumerated. Recovered locally: that upload is skipped with a warning
// and remaining uploads continue.
type ArchiveError struct {
	Upload string
	Err    error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Upload, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }
