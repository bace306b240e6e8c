// Package pricing implements the comp aggregation pipeline: query
// normalization, provider fan-out, relevance ranking and value-range
// derivation.
package pricing

// Listing statuses. A sold comp carries a realized sale price, an active
// comp the current asking price.
const (
	StatusActive = "active"
	StatusSold   = "sold"
)

// Confidence labels for a value range. High is part of the schema but is
// not produced by the current two-tier heuristic.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Comp is a normalized marketplace listing used as pricing evidence. Each
// provider maps its upstream item shape into this record and sets Source.
type Comp struct {
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	URL       string  `json:"url"`
	Thumbnail *string `json:"thumbnail"`
	Source    string  `json:"source"`
	Status    string  `json:"status"`
	EndedAt   *string `json:"ended_at"`

	// Legacy aliases kept for older frontend builds. The estimator sets
	// them to mirror Thumbnail and EndedAt on every comp it returns.
	Thumb    *string `json:"thumb"`
	SoldDate *string `json:"sold_date"`
}

// ValueRange is the estimated value interval with a confidence label.
type ValueRange struct {
	Low        float64 `json:"low"`
	High       float64 `json:"high"`
	Confidence string  `json:"confidence"`
}

// EstimateResult is the response payload of the estimation pipeline.
type EstimateResult struct {
	NormalizedTitle   string     `json:"normalized_title"`
	ValueRange        ValueRange `json:"value_range"`
	PricingRationale  []string   `json:"pricing_rationale"`
	TopCompsUsed      []int      `json:"top_comps_used"`
	Notes             []string   `json:"notes"`
	SuggestedKeywords []string   `json:"suggested_keywords"`
	Comps             []Comp     `json:"comps"`
	ImageURL          *string    `json:"image_url"`
	DurationMs        int64      `json:"duration_ms"`
}
