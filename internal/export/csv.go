package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/planware/keyscan/internal/models"
)

// ResultsFileName is the download name for an exported result set.
const ResultsFileName = "keyword_scan_results.csv"

// ResultsCSV serializes an ordered record sequence as a CSV blob with a
// File,Keyword,Snippet header row. Fields with embedded delimiters,
// quotes or newlines get standard RFC 4180 quoting.
func ResultsCSV(records []models.MatchRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"File", "Keyword", "Snippet"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write([]string{rec.File, rec.Keyword, rec.Snippet}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
