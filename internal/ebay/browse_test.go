package ebay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/antique-pricer/backend/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","expires_in":7200}`))
	}))
}

func TestBrowseSearch(t *testing.T) {
	b, err := os.ReadFile("testdata/browse_item_summary_search.json")
	require.NoError(t, err)

	oauth := newOAuthServer(t)
	defer oauth.Close()

	var req *http.Request
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write(b)
	}))
	defer api.Close()

	p := NewBrowseProvider(BrowseOpts{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      api.URL,
		OAuthURL:     oauth.URL,
	})

	comps, err := p.Search(context.Background(), "mid century teak sideboard", "", 12)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Equal(t, "mid century teak sideboard", req.URL.Query().Get("q"))
	assert.Equal(t, "12", req.URL.Query().Get("limit"))

	// the zero-priced item is dropped, the rest ranked by query overlap
	require.Len(t, comps, 2)
	assert.Equal(t, "Mid-century teak sideboard", comps[0].Title)
	assert.Equal(t, 620.0, comps[0].Price)
	assert.Equal(t, "USD", comps[0].Currency)
	assert.Equal(t, "https://www.ebay.com/itm/1001", comps[0].URL)
	assert.Equal(t, pricing.StatusActive, comps[0].Status)
	assert.Equal(t, SourceBrowse, comps[0].Source)
	require.NotNil(t, comps[0].Thumbnail)
	assert.Equal(t, "https://i.ebayimg.com/thumbs/1001.jpg", *comps[0].Thumbnail)
	assert.Nil(t, comps[0].EndedAt)

	// currency defaulted, thumbnail taken from the image field
	assert.Equal(t, "Danish teak credenza", comps[1].Title)
	assert.Equal(t, "USD", comps[1].Currency)
	require.NotNil(t, comps[1].Thumbnail)
	assert.Equal(t, "https://i.ebayimg.com/images/2001.jpg", *comps[1].Thumbnail)
}

func TestBrowseSearchCategoryFilter(t *testing.T) {
	oauth := newOAuthServer(t)
	defer oauth.Close()

	var req *http.Request
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"itemSummaries":[]}`))
	}))
	defer api.Close()

	p := NewBrowseProvider(BrowseOpts{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      api.URL,
		OAuthURL:     oauth.URL,
	})

	comps, err := p.Search(context.Background(), "teak", "20091", 12)
	require.NoError(t, err)
	assert.Empty(t, comps)
	assert.Equal(t, "20091", req.URL.Query().Get("category_ids"))
}

func TestBrowseSearchWithoutCredentials(t *testing.T) {
	p := NewBrowseProvider(BrowseOpts{})

	comps, err := p.Search(context.Background(), "teak sideboard", "", 12)
	require.NoError(t, err)
	assert.Empty(t, comps)
}

func TestBrowseSearchUpstreamError(t *testing.T) {
	oauth := newOAuthServer(t)
	defer oauth.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer api.Close()

	p := NewBrowseProvider(BrowseOpts{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      api.URL,
		OAuthURL:     oauth.URL,
	})

	comps, err := p.Search(context.Background(), "teak sideboard", "", 12)
	require.NoError(t, err)
	assert.Empty(t, comps)
}

func TestKeywordPhrase(t *testing.T) {
	assert.Equal(t, "mid century teak", keywordPhrase("mid-century, teak!"))
	assert.Equal(t, "antique furniture", keywordPhrase("  ... "))
	assert.Equal(t,
		"a b c d e f g h i j k l",
		keywordPhrase("a b c d e f g h i j k l m n"))
}
