// Package ebay implements comp providers backed by eBay's Browse API
// (active listings) and the legacy Finding API (sold listings).
package ebay

import (
	"regexp"
	"strings"
	"time"
)

// requestTimeout bounds every outbound call so one slow hop cannot stall a
// request indefinitely. No retries; a timed-out call degrades to no comps.
const requestTimeout = 8 * time.Second

const (
	defaultKeywordPhrase = "antique furniture"
	maxKeywordTokens     = 12
)

var keywordRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// keywordPhrase reduces a free-text query to the keyword phrase the search
// APIs handle well: the first 12 alphanumeric tokens joined with spaces.
func keywordPhrase(query string) string {
	words := keywordRegex.FindAllString(query, -1)
	if len(words) > maxKeywordTokens {
		words = words[:maxKeywordTokens]
	}
	if len(words) == 0 {
		return defaultKeywordPhrase
	}
	return strings.Join(words, " ")
}
