package scan_engine

import "strings"

// ParseKeywords splits a comma-separated keyword list, trims whitespace
// and drops empties. Duplicates are removed case-insensitively; the
// first casing wins and input order is preserved for display.
func ParseKeywords(raw string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		kw := strings.TrimSpace(part)
		if kw == "" {
			continue
		}
		folded := strings.ToLower(kw)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		keywords = append(keywords, kw)
	}
	return keywords
}

// ClampWindow bounds the context half-width to the configured valid
// range.
func ClampWindow(window, minWindow, maxWindow int) int {
	if window < minWindow {
		return minWindow
	}
	if window > maxWindow {
		return maxWindow
	}
	return window
}
