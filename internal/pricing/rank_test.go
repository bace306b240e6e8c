package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdersByTitleOverlap(t *testing.T) {
	comps := []Comp{
		{Title: "Danish teak credenza", Price: 540},
		{Title: "Mid-century teak sideboard", Price: 620},
		{Title: "Glass vase", Price: 30},
	}
	ranked := Rank(comps, "mid century teak sideboard")
	require.Len(t, ranked, 3)
	assert.Equal(t, "Mid-century teak sideboard", ranked[0].Title)
	assert.Equal(t, "Danish teak credenza", ranked[1].Title)
	assert.Equal(t, "Glass vase", ranked[2].Title)
}

func TestRankIsStableOnTies(t *testing.T) {
	comps := []Comp{
		{Title: "teak table first"},
		{Title: "teak chair second"},
		{Title: "teak shelf third"},
	}
	ranked := Rank(comps, "teak")
	require.Len(t, ranked, 3)
	assert.Equal(t, "teak table first", ranked[0].Title)
	assert.Equal(t, "teak chair second", ranked[1].Title)
	assert.Equal(t, "teak shelf third", ranked[2].Title)
}

func TestRankIgnoresCaseAndPunctuation(t *testing.T) {
	comps := []Comp{
		{Title: "no match"},
		{Title: "TEAK, SIDEBOARD!"},
	}
	ranked := Rank(comps, "teak sideboard")
	assert.Equal(t, "TEAK, SIDEBOARD!", ranked[0].Title)
}

func TestRankEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil, "teak"))
}
