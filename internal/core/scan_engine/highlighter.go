package scan_engine

// Emphasis markers wrapped around each highlighted occurrence. Markdown
// bold is unlikely to collide with real keywords; a keyword containing
// asterisks would re-match inside markers on a second pass.
const emphasisMarker = "**"

// Highlight re-scans snippet for every case-insensitive occurrence of
// keyword and wraps each in emphasis markers, preserving the matched
// text's original casing. Pure string transform, no side effects.
func Highlight(snippet, keyword string) string {
	if snippet == "" || keyword == "" {
		return snippet
	}
	return compilePattern(keyword).ReplaceAllStringFunc(snippet, func(m string) string {
		return emphasisMarker + m + emphasisMarker
	})
}
