package pricing

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// BuildQuery combines category and notes into a single normalized search
// query: runs of whitespace collapse to one space and the result is trimmed.
// Anything shorter than 3 characters is useless as a marketplace query, so
// the fallback is returned instead.
func BuildQuery(category, notes, fallback string) string {
	blob := strings.TrimSpace(category + " " + notes)
	blob = whitespaceRegex.ReplaceAllString(blob, " ")
	if len(blob) < 3 {
		return fallback
	}
	return blob
}
