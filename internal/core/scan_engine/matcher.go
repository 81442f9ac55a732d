package scan_engine

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// compilePattern builds a case-insensitive literal matcher for keyword.
// QuoteMeta keeps any special characters literal; (?i) applies Unicode
// simple case folding.
func compilePattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
}

// FindSnippets returns the context snippet around every case-insensitive
// occurrence of keyword in text, in left-to-right match order. Matches
// are maximal and non-overlapping: after a match ends, scanning resumes
// past it. Each snippet spans window bytes either side of its match,
// clamped to the text edges, with literal newlines replaced by spaces.
func FindSnippets(text, keyword string, window int) []string {
	if text == "" || keyword == "" {
		return nil
	}

	pattern := compilePattern(keyword)

	var snippets []string
	for _, span := range pattern.FindAllStringIndex(text, -1) {
		start := span[0] - window
		if start < 0 {
			start = 0
		}
		end := span[1] + window
		if end > len(text) {
			end = len(text)
		}

		// Pull the bounds inward to rune boundaries so a multi-byte
		// character is never split. start stops at the match start and
		// end at the match end, so the match itself is never cut.
		for start < span[0] && !utf8.RuneStart(text[start]) {
			start++
		}
		for end > span[1] && end < len(text) && !utf8.RuneStart(text[end]) {
			end--
		}

		snippets = append(snippets, strings.ReplaceAll(text[start:end], "\n", " "))
	}
	return snippets
}
