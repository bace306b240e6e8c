package pricing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Provider produces comps for a search query. Implementations return an
// empty slice, not an error, for ordinary no-data conditions: missing
// credentials, a failing upstream, or a batch where every item was
// malformed. Errors are reserved for conditions the caller cannot absorb.
type Provider interface {
	// Search returns at most limit comps for the query. categoryID is an
	// optional upstream category filter; empty means unfiltered.
	Search(ctx context.Context, query, categoryID string, limit int) ([]Comp, error)

	// Source labels the provider in rationale strings and logs.
	Source() string
}

// PairedProvider queries an active-listing provider and a sold-listing
// provider concurrently and merges their results into one ranked list.
type PairedProvider struct {
	Active Provider
	Sold   Provider
}

var _ Provider = (*PairedProvider)(nil)

func (p *PairedProvider) Source() string {
	return p.Active.Source() + "+" + p.Sold.Source()
}

func (p *PairedProvider) Search(ctx context.Context, query, categoryID string, limit int) ([]Comp, error) {
	var active, sold []Comp

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = p.Active.Search(ctx, query, categoryID, limit)
		return err
	})
	g.Go(func() error {
		var err error
		sold, err = p.Sold.Search(ctx, query, categoryID, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]Comp, 0, len(active)+len(sold))
	merged = append(merged, active...)
	merged = append(merged, sold...)
	merged = Rank(merged, query)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}
