package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseUpload(t *testing.T) {
	var req *http.Request
	var body []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Key":"ignored"}`))
	}))
	defer ts.Close()

	s := NewSupabase(SupabaseOpts{
		URL:            ts.URL,
		ServiceRoleKey: "service-role-key",
		Bucket:         "images",
	})
	require.True(t, s.Configured())

	publicURL, err := s.Upload(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.NotNil(t, publicURL)

	assert.Equal(t, "Bearer service-role-key", req.Header.Get("Authorization"))
	assert.Equal(t, "image/png", req.Header.Get("Content-Type"))
	assert.Equal(t, "png-bytes", string(body))

	require.True(t, strings.HasPrefix(req.URL.Path, "/storage/v1/object/images/estimates/"))
	assert.True(t, strings.HasSuffix(req.URL.Path, ".png"))

	key := strings.TrimPrefix(req.URL.Path, "/storage/v1/object/images/")
	assert.Equal(t, ts.URL+"/storage/v1/object/public/images/"+key, *publicURL)
}

func TestSupabaseUploadKeysAreUnique(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	s := NewSupabase(SupabaseOpts{URL: ts.URL, ServiceRoleKey: "k", Bucket: "images"})

	_, err := s.Upload(context.Background(), []byte("a"), "image/jpeg")
	require.NoError(t, err)
	_, err = s.Upload(context.Background(), []byte("b"), "image/jpeg")
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0], paths[1])
}

func TestSupabaseUnconfigured(t *testing.T) {
	s := NewSupabase(SupabaseOpts{})
	assert.False(t, s.Configured())

	publicURL, err := s.Upload(context.Background(), []byte("x"), "image/jpeg")
	assert.NoError(t, err)
	assert.Nil(t, publicURL)
}

func TestSupabaseUploadError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer ts.Close()

	s := NewSupabase(SupabaseOpts{URL: ts.URL, ServiceRoleKey: "k", Bucket: "missing"})

	_, err := s.Upload(context.Background(), []byte("x"), "image/jpeg")
	assert.Error(t, err)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".gif", extensionFor("image/gif"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".jpg", extensionFor(""))
}
