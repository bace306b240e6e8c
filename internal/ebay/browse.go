package ebay

import (
	"context"
	"strconv"

	"github.com/antique-pricer/backend/internal/pricing"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// SourceBrowse labels comps produced from the Browse API.
const SourceBrowse = "ebay_browse"

const (
	prodBrowseURL    = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	sandboxBrowseURL = "https://api.sandbox.ebay.com/buy/browse/v1/item_summary/search"
)

// BrowseOpts configures a BrowseProvider. BaseURL and OAuthURL override the
// eBay endpoints, for testing.
type BrowseOpts struct {
	ClientID     string
	ClientSecret string
	Sandbox      bool
	BaseURL      string
	OAuthURL     string
}

// BrowseProvider searches current for-sale inventory through the eBay
// Browse API. Prices are asking prices, not realized ones.
type BrowseProvider struct {
	httpClient *resty.Client
	tokens     *tokenSource
}

var _ pricing.Provider = (*BrowseProvider)(nil)

func NewBrowseProvider(opts BrowseOpts) *BrowseProvider {
	baseURL, oauthURL := prodBrowseURL, prodOAuthURL
	if opts.Sandbox {
		baseURL, oauthURL = sandboxBrowseURL, sandboxOAuthURL
	}
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	if opts.OAuthURL != "" {
		oauthURL = opts.OAuthURL
	}

	return &BrowseProvider{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout),
		tokens: newTokenSource(opts.ClientID, opts.ClientSecret, oauthURL),
	}
}

func (p *BrowseProvider) Source() string {
	return SourceBrowse
}

type browseImage struct {
	ImageURL string `json:"imageUrl"`
}

type browsePrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type browseItem struct {
	Title           string        `json:"title"`
	Price           browsePrice   `json:"price"`
	ItemWebURL      string        `json:"itemWebUrl"`
	ItemHref        string        `json:"itemHref"`
	ThumbnailImages []browseImage `json:"thumbnailImages"`
	Image           *browseImage  `json:"image"`
}

type browseResponse struct {
	ItemSummaries []browseItem `json:"itemSummaries"`
}

// Search implements pricing.Provider. Every ordinary no-data condition
// (missing credentials, failed token refresh, upstream error status)
// produces an empty result, never an error.
func (p *BrowseProvider) Search(ctx context.Context, query, categoryID string, limit int) ([]pricing.Comp, error) {
	token, err := p.tokens.get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("ebay browse: token refresh failed")
		return []pricing.Comp{}, nil
	}
	if token == "" {
		return []pricing.Comp{}, nil
	}

	result := &browseResponse{}
	req := p.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"q":     keywordPhrase(query),
			"limit": strconv.Itoa(limit),
		}).
		SetResult(result)
	if categoryID != "" {
		req.SetQueryParam("category_ids", categoryID)
	}

	res, err := req.Get("")
	if err != nil {
		log.Warn().Err(err).Msg("ebay browse: search request failed")
		return []pricing.Comp{}, nil
	}
	if res.IsError() {
		log.Warn().Int("status", res.StatusCode()).Msg("ebay browse: error status from search")
		return []pricing.Comp{}, nil
	}

	comps := make([]pricing.Comp, 0, len(result.ItemSummaries))
	for _, it := range result.ItemSummaries {
		price, _ := strconv.ParseFloat(it.Price.Value, 64)
		if price <= 0 {
			continue
		}
		currency := it.Price.Currency
		if currency == "" {
			currency = "USD"
		}
		itemURL := it.ItemWebURL
		if itemURL == "" {
			itemURL = it.ItemHref
		}
		comps = append(comps, pricing.Comp{
			Title:     it.Title,
			Price:     price,
			Currency:  currency,
			URL:       itemURL,
			Thumbnail: browseThumbnail(it),
			Source:    SourceBrowse,
			Status:    pricing.StatusActive,
		})
	}

	ranked := pricing.Rank(comps, query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// browseThumbnail prefers the thumbnailImages list over the single image
// field, matching which of the two the Browse API actually populates.
func browseThumbnail(it browseItem) *string {
	if len(it.ThumbnailImages) > 0 && it.ThumbnailImages[0].ImageURL != "" {
		u := it.ThumbnailImages[0].ImageURL
		return &u
	}
	if it.Image != nil && it.Image.ImageURL != "" {
		u := it.Image.ImageURL
		return &u
	}
	return nil
}
