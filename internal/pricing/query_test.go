package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		category string
		notes    string
		want     string
	}{
		{"category and notes", "mid century", "teak sideboard", "mid century teak sideboard"},
		{"collapses whitespace runs", "  mid   century ", " teak\t sideboard  ", "mid century teak sideboard"},
		{"empty inputs fall back", "", "", "antique furniture"},
		{"single character falls back", "a", "", "antique furniture"},
		{"whitespace only falls back", "  ", " \t ", "antique furniture"},
		{"exactly three characters kept", "cup", "", "cup"},
		{"notes only", "", "brass candlestick", "brass candlestick"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.category, tt.notes, "antique furniture"))
		})
	}
}

func TestBuildQueryNormalizesWhitespace(t *testing.T) {
	got := BuildQuery(" oak \n dresser ", "  with   mirror ", "antique furniture")
	assert.Equal(t, "oak dresser with mirror", got)
	assert.NotContains(t, got, "  ")
}
