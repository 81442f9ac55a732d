package scan_engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeywords_TrimsAndDropsEmpties(t *testing.T) {
	got := ParseKeywords(" construction , height,, traffic ,")

	assert.Equal(t, []string{"construction", "height", "traffic"}, got)
}

func TestParseKeywords_DeduplicatesCaseInsensitively(t *testing.T) {
	got := ParseKeywords("parking, parking")
	assert.Equal(t, []string{"parking"}, got)

	// First casing wins for display.
	got = ParseKeywords("Parking, PARKING, green belt")
	assert.Equal(t, []string{"Parking", "green belt"}, got)
}

func TestParseKeywords_PreservesInputOrder(t *testing.T) {
	got := ParseKeywords("heritage, biodiversity, affordable housing")

	assert.Equal(t, []string{"heritage", "biodiversity", "affordable housing"}, got)
}

func TestParseKeywords_Empty(t *testing.T) {
	assert.Empty(t, ParseKeywords(""))
	assert.Empty(t, ParseKeywords(" , ,, "))
}

func TestClampWindow(t *testing.T) {
	tests := []struct {
		name   string
		window int
		want   int
	}{
		{"below minimum", 5, 20},
		{"at minimum", 20, 20},
		{"in range", 60, 60},
		{"at maximum", 400, 400},
		{"above maximum", 5000, 400},
		{"negative", -10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampWindow(tt.window, 20, 400))
		})
	}
}
