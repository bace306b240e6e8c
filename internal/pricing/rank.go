package pricing

import (
	"regexp"
	"sort"
	"strings"
)

var wordRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Rank orders comps by how many words their title shares with the query.
// The sort is stable, so comps with equal overlap keep their original
// relative order.
func Rank(comps []Comp, query string) []Comp {
	queryWords := wordSet(query)
	scores := make([]int, len(comps))
	for i, c := range comps {
		scores[i] = overlap(queryWords, wordSet(c.Title))
	}

	indices := make([]int, len(comps))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	ranked := make([]Comp, 0, len(comps))
	for _, i := range indices {
		ranked = append(ranked, comps[i])
	}
	return ranked
}

func wordSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range wordRegex.FindAllString(strings.ToLower(s), -1) {
		set[w] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for w := range b {
		if _, ok := a[w]; ok {
			n++
		}
	}
	return n
}
