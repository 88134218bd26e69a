package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - collapses every whitespace run (spaces, tabs, newlines) into one space
//   - applies Unicode case folding
//
// Diacritics, hyphens, and apostrophes are preserved. The result is stable
// under repeated application.
func NormalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	// cases.Caser is stateful and not safe for concurrent use.
	return cases.Fold().String(strings.Join(fields, " "))
}

// NormalizeAll normalizes every entry and drops the ones that end up empty.
func NormalizeAll(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if n := NormalizeText(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
