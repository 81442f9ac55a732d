package export

import (
	"testing"

	"github.com/planware/keyscan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsCSV_HeaderAndRows(t *testing.T) {
	data, err := ResultsCSV([]models.MatchRecord{
		{File: "plan.pdf", Keyword: "parking", Snippet: "the parking bays"},
		{File: "plan.pdf", Keyword: "height", Snippet: "HEIGHT limits"},
	})

	require.NoError(t, err)
	assert.Equal(t,
		"File,Keyword,Snippet\n"+
			"plan.pdf,parking,the parking bays\n"+
			"plan.pdf,height,HEIGHT limits\n",
		string(data))
}

func TestResultsCSV_QuotesEmbeddedDelimiters(t *testing.T) {
	data, err := ResultsCSV([]models.MatchRecord{
		{File: "a.pdf", Keyword: "traffic", Snippet: `flows, per the "survey", exceed`},
	})

	require.NoError(t, err)
	assert.Equal(t,
		"File,Keyword,Snippet\n"+
			"a.pdf,traffic,\"flows, per the \"\"survey\"\", exceed\"\n",
		string(data))
}

func TestResultsCSV_EmptyRecordSet(t *testing.T) {
	data, err := ResultsCSV(nil)

	require.NoError(t, err)
	assert.Equal(t, "File,Keyword,Snippet\n", string(data))
}

func TestResultsFileName(t *testing.T) {
	assert.Equal(t, "keyword_scan_results.csv", ResultsFileName)
}
