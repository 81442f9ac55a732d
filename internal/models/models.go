package models

// Upload is one raw payload handed to a scan run: a display name
// (typically the original filename) and opaque bytes. An upload may be a
// single document or a zip archive bundling many.
type Upload struct {
	Name string
	Data []byte
}

// UploadKind is the tagged variant behind "is this a document or an
// archive". It is resolved once from the filename suffix at ingestion;
// downstream code switches on the tag, never on the name.
type UploadKind int

const (
	KindDocument UploadKind = iota
	KindArchive
	KindUnsupported
)

// Document is a single scannable file staged in the spool. The payload
// lives on disk, not in the struct, and is read back exactly once at
// extraction time.
type Document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"-"`
}

// MatchRecord is one reported occurrence of one keyword in one document.
// Keyword keeps the casing it was configured with; Snippet is the
// bounded context around the match with newlines collapsed to spaces.
type MatchRecord struct {
	File    string `json:"file"`
	Keyword string `json:"keyword"`
	Snippet string `json:"snippet"`
}

// DocumentFailure is the per-document diagnostic for a payload that
// could not be converted to text. The document contributes zero records
// and the batch continues.
type DocumentFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// IngestWarning records an upload skipped at the ingestion boundary
// (malformed archive, unsupported file type).
type IngestWarning struct {
	Upload string `json:"upload"`
	Reason string `json:"reason"`
}

// ScanReport is the full outcome of one scan run. Records are ordered by
// (document ingestion order, keyword configuration order, match
// occurrence order within the text).
type ScanReport struct {
	Keywords         []string          `json:"keywords"`
	Window           int               `json:"window"`
	Records          []MatchRecord     `json:"records"`
	Failures         []DocumentFailure `json:"failures,omitempty"`
	Warnings         []IngestWarning   `json:"warnings,omitempty"`
	DocumentsScanned int               `json:"documents_scanned"`
}
