package scan_engine

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/planware/keyscan/internal/core"
	"github.com/planware/keyscan/internal/models"
)

// documentExts lists the filename suffixes accepted as scannable
// documents, both as loose uploads and inside archives. Everything here
// must be convertible by the configured extractor.
var documentExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

const archiveExt = ".zip"

// KindOf resolves an upload's kind from its filename suffix, once.
func KindOf(name string) models.UploadKind {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == archiveExt:
		return models.KindArchive
	case documentExts[ext]:
		return models.KindDocument
	default:
		return models.KindUnsupported
	}
}

// Spool is the scoped temporary storage for one scan run. Every staged
// payload lives under a run-private directory; Close removes the whole
// directory on every exit path. A spool is owned by exactly one run and
// never shared.
type Spool struct {
	dir string
}

// NewSpool creates a fresh run-private directory under baseDir.
func NewSpool(baseDir string) (*Spool, error) {
	dir := filepath.Join(baseDir, "keyscan-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	return &Spool{dir: dir}, nil
}

// Dir returns the spool's private directory.
func (s *Spool) Dir() string { return s.dir }

// stage writes one payload to the spool under fileName and returns the
// staged path.
func (s *Spool) stage(fileName string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", fileName, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("stage %s: %w", fileName, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("stage %s: %w", fileName, err)
	}
	return path, nil
}

// Close releases the spool, deleting every staged file.
func (s *Spool) Close() error {
	return os.RemoveAll(s.dir)
}

// BatchIngestor expands mixed uploads (loose documents and zip archives)
// into a flat ordered list of staged documents. Payload bytes go to the
// spool, not memory: documents are read back one at a time during the
// scan.
type BatchIngestor struct {
	spool *Spool
	seq   int
}

func NewBatchIngestor(spool *Spool) *BatchIngestor {
	return &BatchIngestor{spool: spool}
}

// Ingest stages every supported document from uploads, preserving upload
// order. Archive members are expanded in place as a contiguous run, in
// the archive's listing order; members that are not supported documents
// are skipped silently. A malformed archive or an unsupported loose
// upload is skipped with a warning and remaining uploads continue.
func (b *BatchIngestor) Ingest(ctx context.Context, uploads []models.Upload) ([]models.Document, []models.IngestWarning, error) {
	var docs []models.Document
	var warnings []models.IngestWarning

	for _, up := range uploads {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		switch KindOf(up.Name) {
		case models.KindArchive:
			members, err := b.expandArchive(up)
			if err != nil {
				archErr := &core.ArchiveError{Upload: up.Name, Err: err}
				log.Printf("ingest: %v", archErr)
				warnings = append(warnings, models.IngestWarning{Upload: up.Name, Reason: archErr.Error()})
				continue
			}
			docs = append(docs, members...)
		case models.KindDocument:
			doc, err := b.stageDocument(up.Name, bytes.NewReader(up.Data))
			if err != nil {
				return nil, nil, err
			}
			docs = append(docs, doc)
		default:
			warnings = append(warnings, models.IngestWarning{Upload: up.Name, Reason: "unsupported file type"})
		}
	}
	return docs, warnings, nil
}

// expandArchive stages every supported document member of a zip upload,
// in listing order. Any failure aborts this archive's contribution;
// partially staged members are cleaned up when the spool closes.
func (b *BatchIngestor) expandArchive(up models.Upload) ([]models.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(up.Data), int64(len(up.Data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var docs []models.Document
	for _, member := range zr.File {
		if member.FileInfo().IsDir() || KindOf(member.Name) != models.KindDocument {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("open member %s: %w", member.Name, err)
		}
		doc, err := b.stageDocument(member.Name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// stageDocument writes one document payload to the spool and returns its
// record. The staged filename carries a sequence prefix so same-named
// uploads never clobber each other; Base strips any path components from
// the display name.
func (b *BatchIngestor) stageDocument(name string, r io.Reader) (models.Document, error) {
	base := filepath.Base(name)
	b.seq++
	path, err := b.spool.stage(fmt.Sprintf("%04d_%s", b.seq, base), r)
	if err != nil {
		return models.Document{}, err
	}
	return models.Document{ID: uuid.NewString(), Name: base, Path: path}, nil
}
