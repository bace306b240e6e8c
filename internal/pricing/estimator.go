package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultFallbackQuery seeds the search when category and notes are
	// too sparse to build a usable query from.
	DefaultFallbackQuery = "antique furniture"

	// CategoryNotSure is the sentinel the frontend sends when the user
	// does not know the item's category.
	CategoryNotSure = "not_sure"

	defaultCompLimit = 12
	maxTopComps      = 3
	maxKeywords      = 5
)

// Estimator turns a category and free-text notes into a value-range
// estimate backed by comparable listings from the configured provider.
type Estimator struct {
	provider Provider
	fallback string
	limit    int
}

func NewEstimator(provider Provider) *Estimator {
	return &Estimator{
		provider: provider,
		fallback: DefaultFallbackQuery,
		limit:    defaultCompLimit,
	}
}

// Estimate runs the pricing pipeline: build the query, search the provider,
// derive the value range and shape the response. imageURL is attached to
// the result as-is; nil means image storage was not configured. Expected
// no-data conditions come back as a low confidence result, not an error.
func (e *Estimator) Estimate(ctx context.Context, category, notes string, imageURL *string) (EstimateResult, error) {
	start := time.Now()

	if category == CategoryNotSure {
		category = ""
	}

	query := BuildQuery(category, notes, e.fallback)
	comps, err := e.provider.Search(ctx, query, "", e.limit)
	if err != nil {
		return EstimateResult{}, fmt.Errorf("comp search failed: %w", err)
	}
	log.Debug().
		Str("query", query).
		Str("source", e.provider.Source()).
		Int("comps", len(comps)).
		Msg("comp search finished")

	result := EstimateResult{
		NormalizedTitle:   normalizedTitle(category),
		PricingRationale:  []string{},
		TopCompsUsed:      []int{},
		Notes:             []string{},
		SuggestedKeywords: suggestedKeywords(query),
		Comps:             []Comp{},
		ImageURL:          imageURL,
	}

	if len(comps) == 0 {
		result.ValueRange = ValueRange{Confidence: ConfidenceLow}
		result.PricingRationale = append(result.PricingRationale,
			fmt.Sprintf("No comparable listings found for %q via %s.", query, e.provider.Source()))
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	result.ValueRange = priceRange(comps)

	// The aliases are per-comp, so set them on a copy rather than the
	// provider's slice.
	out := make([]Comp, len(comps))
	for i, c := range comps {
		c.Thumb = c.Thumbnail
		c.SoldDate = c.EndedAt
		out[i] = c
	}
	result.Comps = out

	top := len(out)
	if top > maxTopComps {
		top = maxTopComps
	}
	for i := 0; i < top; i++ {
		result.TopCompsUsed = append(result.TopCompsUsed, i)
	}

	kind := StatusActive
	if out[0].Status == StatusSold {
		kind = StatusSold
	}
	result.PricingRationale = append(result.PricingRationale,
		fmt.Sprintf("Based on %d %s comps for %q via %s.", len(out), kind, query, e.provider.Source()))

	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// priceRange derives low/high bounds from comps that carry a usable price.
// A price of 0 means the source had no usable price; such comps stay in the
// response but never contribute to the range. Without any priced comp the
// range collapses to zero with low confidence.
func priceRange(comps []Comp) ValueRange {
	priced := false
	var low, high float64
	for _, c := range comps {
		if c.Price <= 0 {
			continue
		}
		if !priced || c.Price < low {
			low = c.Price
		}
		if !priced || c.Price > high {
			high = c.Price
		}
		priced = true
	}
	if !priced {
		return ValueRange{Confidence: ConfidenceLow}
	}
	return ValueRange{Low: low, High: high, Confidence: ConfidenceMedium}
}

func suggestedKeywords(query string) []string {
	words := strings.Fields(query)
	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}

// normalizedTitle turns a category slug like "mid_century_furniture" into a
// display label.
func normalizedTitle(category string) string {
	words := strings.Fields(strings.ReplaceAll(category, "_", " "))
	if len(words) == 0 {
		return "Unknown Item"
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
