package ebay

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/antique-pricer/backend/internal/pricing"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// SourceSold labels comps produced from the Finding API's completed-items
// feed.
const SourceSold = "ebay_sold"

const findingURL = "https://svcs.ebay.com/services/search/FindingService/v1"

// FindingOpts configures a FindingProvider. BaseURL overrides the eBay
// endpoint, for testing.
type FindingOpts struct {
	AppID   string
	BaseURL string
}

// FindingProvider searches completed sold listings through the legacy eBay
// Finding API. The API wraps every field in a single-element array, so
// parsing is tolerant per item: one malformed entry never sinks the batch.
type FindingProvider struct {
	httpClient *resty.Client
	appID      string
}

var _ pricing.Provider = (*FindingProvider)(nil)

func NewFindingProvider(opts FindingOpts) *FindingProvider {
	baseURL := findingURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	return &FindingProvider{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout),
		appID: opts.AppID,
	}
}

func (p *FindingProvider) Source() string {
	return SourceSold
}

type findingPrice struct {
	Value string `json:"__value__"`
}

type findingSellingStatus struct {
	CurrentPrice []findingPrice `json:"currentPrice"`
}

type findingListingInfo struct {
	EndTime []string `json:"endTime"`
}

type findingItem struct {
	Title         []string               `json:"title"`
	ViewItemURL   []string               `json:"viewItemURL"`
	GalleryURL    []string               `json:"galleryURL"`
	SellingStatus []findingSellingStatus `json:"sellingStatus"`
	ListingInfo   []findingListingInfo   `json:"listingInfo"`
}

type findingSearchResult struct {
	Item []json.RawMessage `json:"item"`
}

type findingResponse struct {
	FindCompletedItemsResponse []struct {
		SearchResult []findingSearchResult `json:"searchResult"`
	} `json:"findCompletedItemsResponse"`
}

// Search implements pricing.Provider. Results are sold-only and sorted by
// soonest-ended upstream; no reranking is applied here.
func (p *FindingProvider) Search(ctx context.Context, query, categoryID string, limit int) ([]pricing.Comp, error) {
	if p.appID == "" {
		return []pricing.Comp{}, nil
	}

	result := &findingResponse{}
	req := p.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"OPERATION-NAME":                 "findCompletedItems",
			"SERVICE-VERSION":                "1.13.0",
			"SECURITY-APPNAME":               p.appID,
			"RESPONSE-DATA-FORMAT":           "JSON",
			"REST-PAYLOAD":                   "true",
			"keywords":                       query,
			"itemFilter(0).name":             "SoldItemsOnly",
			"itemFilter(0).value":            "true",
			"paginationInput.entriesPerPage": strconv.Itoa(limit),
			"sortOrder":                      "EndTimeSoonest",
		}).
		SetResult(result)
	if categoryID != "" {
		req.SetQueryParam("categoryId", categoryID)
	}

	res, err := req.Get("")
	if err != nil {
		log.Warn().Err(err).Msg("ebay finding: search request failed")
		return []pricing.Comp{}, nil
	}
	if res.IsError() {
		log.Warn().Int("status", res.StatusCode()).Msg("ebay finding: error status from search")
		return []pricing.Comp{}, nil
	}

	comps := make([]pricing.Comp, 0, limit)
	for _, raw := range findingItems(result) {
		var it findingItem
		if err := json.Unmarshal(raw, &it); err != nil {
			log.Debug().Err(err).Msg("ebay finding: skipping malformed item")
			continue
		}
		comps = append(comps, soldComp(it))
		if len(comps) == limit {
			break
		}
	}
	return comps, nil
}

func findingItems(r *findingResponse) []json.RawMessage {
	if len(r.FindCompletedItemsResponse) == 0 {
		return nil
	}
	sr := r.FindCompletedItemsResponse[0].SearchResult
	if len(sr) == 0 {
		return nil
	}
	return sr[0].Item
}

func soldComp(it findingItem) pricing.Comp {
	comp := pricing.Comp{
		Currency: "USD",
		Source:   SourceSold,
		Status:   pricing.StatusSold,
	}
	if len(it.Title) > 0 {
		comp.Title = it.Title[0]
	}
	if len(it.ViewItemURL) > 0 {
		comp.URL = it.ViewItemURL[0]
	}
	if len(it.GalleryURL) > 0 && it.GalleryURL[0] != "" {
		u := it.GalleryURL[0]
		comp.Thumbnail = &u
	}
	// Price parse failure defaults to 0; such a comp stays in the list
	// but is unusable for range computation.
	if len(it.SellingStatus) > 0 && len(it.SellingStatus[0].CurrentPrice) > 0 {
		price, _ := strconv.ParseFloat(it.SellingStatus[0].CurrentPrice[0].Value, 64)
		comp.Price = math.Round(price*100) / 100
	}
	comp.EndedAt = soldEndedAt(it)
	return comp
}

// soldEndedAt truncates the close timestamp to YYYY-MM-DD, substituting the
// current date when it is missing or too short to be a date.
func soldEndedAt(it findingItem) *string {
	endedAt := time.Now().Format("2006-01-02")
	if len(it.ListingInfo) > 0 && len(it.ListingInfo[0].EndTime) > 0 {
		if et := it.ListingInfo[0].EndTime[0]; len(et) >= 10 {
			endedAt = et[:10]
		}
	}
	return &endedAt
}
