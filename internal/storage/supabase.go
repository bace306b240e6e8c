// Package storage persists uploaded estimate images in a Supabase storage
// bucket.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const requestTimeout = 8 * time.Second

// SupabaseOpts configures a Supabase client. Leaving any field empty is
// valid and produces an unconfigured client.
type SupabaseOpts struct {
	URL            string
	ServiceRoleKey string
	Bucket         string
}

// Supabase uploads images under generated unique keys and returns their
// public URLs. An unconfigured client stores nothing and returns nil URLs;
// absence of storage is a valid deployment state, not an error.
type Supabase struct {
	httpClient *resty.Client
	baseURL    string
	bucket     string
	configured bool
}

func NewSupabase(opts SupabaseOpts) *Supabase {
	s := &Supabase{
		baseURL: strings.TrimRight(opts.URL, "/"),
		bucket:  opts.Bucket,
	}
	if opts.URL == "" || opts.ServiceRoleKey == "" || opts.Bucket == "" {
		return s
	}
	s.configured = true
	s.httpClient = resty.New().
		SetBaseURL(s.baseURL).
		SetTimeout(requestTimeout).
		SetAuthToken(opts.ServiceRoleKey)
	return s
}

// Configured reports whether uploads will actually be stored.
func (s *Supabase) Configured() bool {
	return s.configured
}

// Upload stores data under a generated unique key and returns the publicly
// resolvable URL. A nil URL with nil error means storage is not configured.
func (s *Supabase) Upload(ctx context.Context, data []byte, contentType string) (*string, error) {
	if !s.configured {
		return nil, nil
	}

	key := "estimates/" + uuid.NewString() + extensionFor(contentType)
	res, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post("/storage/v1/object/" + s.bucket + "/" + key)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("storage upload failed: status %d", res.StatusCode())
	}

	publicURL := s.baseURL + "/storage/v1/object/public/" + s.bucket + "/" + key
	return &publicURL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
