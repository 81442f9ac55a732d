package scan_engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/planware/keyscan/internal/core"
	"github.com/planware/keyscan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExtractor returns the payload bytes as text, or an error for
// payloads it is told to reject.
type stubExtractor struct {
	failOn map[string]bool
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	if s.failOn[string(data)] {
		return "", errors.New("corrupt document")
	}
	return string(data), nil
}

type progressCall struct {
	processed, total int
	label            string
}

func newTestOrchestrator(t *testing.T, failOn map[string]bool) (*Orchestrator, *[]progressCall) {
	t.Helper()
	var calls []progressCall
	progress := func(processed, total int, label string) {
		calls = append(calls, progressCall{processed, total, label})
	}
	orch := NewOrchestrator(&stubExtractor{failOn: failOn}, NewBatchIngestor(newTestSpool(t)), progress)
	return orch, &calls
}

func TestOrchestrator_EmptyUploadList(t *testing.T) {
	orch, calls := newTestOrchestrator(t, nil)

	report, err := orch.Run(context.Background(), nil, []string{"parking"}, 60)

	assert.ErrorIs(t, err, core.ErrNoDocuments)
	assert.Empty(t, report.Records)
	assert.Empty(t, *calls, "no document means no progress events")
	assert.Equal(t, StateIdle, orch.State())
}

func TestOrchestrator_NoKeywords(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	_, err := orch.Run(context.Background(), []models.Upload{
		{Name: "a.txt", Data: []byte("text")},
	}, nil, 60)

	assert.ErrorIs(t, err, core.ErrNoKeywords)
}

func TestOrchestrator_FailureIsolation(t *testing.T) {
	orch, calls := newTestOrchestrator(t, map[string]bool{"BROKEN": true})

	report, err := orch.Run(context.Background(), []models.Upload{
		{Name: "bad.txt", Data: []byte("BROKEN")},
		{Name: "good.txt", Data: []byte("parking is available")},
	}, []string{"parking"}, 60)

	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	assert.Equal(t, "good.txt", report.Records[0].File)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "bad.txt", report.Failures[0].File)
	assert.Contains(t, report.Failures[0].Reason, "corrupt document")

	// Progress still reaches 2/2: failures count as processed.
	require.Len(t, *calls, 2)
	assert.Equal(t, progressCall{1, 2, "bad.txt"}, (*calls)[0])
	assert.Equal(t, progressCall{2, 2, "good.txt"}, (*calls)[1])

	assert.Equal(t, 2, report.DocumentsScanned)
}

func TestOrchestrator_RecordOrdering(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	report, err := orch.Run(context.Background(), []models.Upload{
		{Name: "one.txt", Data: []byte("parking then traffic then parking")},
		{Name: "two.txt", Data: []byte("traffic only")},
	}, []string{"parking", "traffic"}, 0)

	require.NoError(t, err)
	require.Len(t, report.Records, 4)

	// (document order, keyword order, occurrence order)
	expect := []struct{ file, keyword string }{
		{"one.txt", "parking"},
		{"one.txt", "parking"},
		{"one.txt", "traffic"},
		{"two.txt", "traffic"},
	}
	for i, want := range expect {
		assert.Equal(t, want.file, report.Records[i].File, "record %d", i)
		assert.Equal(t, want.keyword, report.Records[i].Keyword, "record %d", i)
	}
}

func TestOrchestrator_NoMatches(t *testing.T) {
	orch, calls := newTestOrchestrator(t, nil)

	report, err := orch.Run(context.Background(), []models.Upload{
		{Name: "a.txt", Data: []byte("nothing relevant here")},
	}, []string{"parking"}, 60)

	assert.ErrorIs(t, err, core.ErrNoMatches)
	assert.Empty(t, report.Records)
	assert.Equal(t, 1, report.DocumentsScanned)
	assert.Len(t, *calls, 1)
}

func TestOrchestrator_ProgressMonotonic(t *testing.T) {
	orch, calls := newTestOrchestrator(t, nil)

	var uploads []models.Upload
	for i := 0; i < 5; i++ {
		uploads = append(uploads, models.Upload{
			Name: fmt.Sprintf("doc%d.txt", i),
			Data: []byte("parking"),
		})
	}

	_, err := orch.Run(context.Background(), uploads, []string{"parking"}, 10)
	require.NoError(t, err)

	require.Len(t, *calls, 5)
	for i, call := range *calls {
		assert.Equal(t, i+1, call.processed)
		assert.Equal(t, 5, call.total)
	}
}

func TestOrchestrator_MalformedArchiveWarningInReport(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	report, err := orch.Run(context.Background(), []models.Upload{
		{Name: "broken.zip", Data: []byte("garbage")},
		{Name: "good.txt", Data: []byte("parking bay")},
	}, []string{"parking"}, 60)

	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "broken.zip", report.Warnings[0].Upload)
	assert.Len(t, report.Records, 1)
}

func TestOrchestrator_CancelledBetweenDocuments(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Run(ctx, []models.Upload{
		{Name: "a.txt", Data: []byte("parking")},
	}, []string{"parking"}, 60)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateFailed, orch.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "ingesting", StateIngesting.String())
	assert.Equal(t, "scanning", StateScanning.String())
	assert.Equal(t, "reporting", StateReporting.String())
	assert.Equal(t, "failed", StateFailed.String())
}
