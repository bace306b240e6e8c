package ebay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	prodOAuthURL    = "https://api.ebay.com/identity/v1/oauth2/token"
	sandboxOAuthURL = "https://api.sandbox.ebay.com/identity/v1/oauth2/token"

	oauthScope = "https://api.ebay.com/oauth/api_scope https://api.ebay.com/oauth/api_scope/buy.browse.readonly"

	// refreshMargin is how close to expiry a cached token is still
	// trusted.
	refreshMargin = 60 * time.Second

	// defaultExpirySeconds matches eBay's application token lifetime,
	// used when the response omits expires_in.
	defaultExpirySeconds = 7200
)

// tokenSource fetches and caches an eBay application access token obtained
// through the client-credentials grant. Concurrent callers may race to
// refresh; the grant is idempotent and the last writer wins, so no mutual
// exclusion is held across the network call.
type tokenSource struct {
	httpClient   *resty.Client
	clientID     string
	clientSecret string

	mu      sync.RWMutex
	token   string
	expires time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func newTokenSource(clientID, clientSecret, oauthURL string) *tokenSource {
	return &tokenSource{
		httpClient: resty.New().
			SetBaseURL(oauthURL).
			SetTimeout(requestTimeout),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// get returns a valid bearer token, refreshing the cached one when it is
// within refreshMargin of expiry. Missing credentials yield an empty token
// and no error; callers treat that as "no data available".
func (t *tokenSource) get(ctx context.Context) (string, error) {
	if t.clientID == "" || t.clientSecret == "" {
		return "", nil
	}

	t.mu.RLock()
	token, expires := t.token, t.expires
	t.mu.RUnlock()
	if token != "" && time.Now().Before(expires.Add(-refreshMargin)) {
		return token, nil
	}

	result := &tokenResponse{}
	res, err := t.httpClient.R().
		SetContext(ctx).
		SetBasicAuth(t.clientID, t.clientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
			"scope":      oauthScope,
		}).
		SetResult(result).
		Post("")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("token request failed: status %d", res.StatusCode())
	}

	expiresIn := result.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpirySeconds
	}

	t.mu.Lock()
	t.token = result.AccessToken
	t.expires = time.Now().Add(time.Duration(expiresIn) * time.Second)
	t.mu.Unlock()

	return result.AccessToken, nil
}
