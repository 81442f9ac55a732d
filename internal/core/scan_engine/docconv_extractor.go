package scan_engine

import (
	"bytes"
	"context"
	"fmt"

	"code.sajari.com/docconv"

	"github.com/planware/keyscan/internal/core"
)

var _ core.DocumentExtractor = (*DocconvExtractor)(nil)

// DocconvExtractor implements core.DocumentExtractor using sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// Extract converts the payload to plain text based on content type.
// docconv joins per-page text with newlines in page order; a page with
// no extractable text contributes an empty string, so page count
// survives the join.
func (e *DocconvExtractor) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := docconv.Convert(bytes.NewReader(data), contentType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv (%s): %w", contentType, err)
	}
	return res.Body, nil
}
