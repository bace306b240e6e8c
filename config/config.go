// Package config reads the service configuration from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Provider selection values for the PROVIDER env var. The provider is
// chosen once per deployment, not per request.
const (
	ProviderBrowse = "browse"
	ProviderSold   = "sold"
	ProviderBoth   = "both"
)

// defaultCORSOrigin is the production frontend origin.
const defaultCORSOrigin = "https://antique-pricer.vercel.app"

// Config carries the service configuration. Missing marketplace or storage
// credentials are valid: the affected component degrades to empty results
// or a nil image URL instead of failing startup.
type Config struct {
	Port       string
	CORSOrigin string

	EbayClientID     string
	EbayClientSecret string
	EbaySandbox      bool
	EbayAppID        string

	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseBucket         string

	Provider string
}

// LoadEnvFile loads environment variables from a local .env file. Errors
// are ignored since the file may not exist.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:       getenv("PORT", "8000"),
		CORSOrigin: getenv("CORS_ORIGIN", defaultCORSOrigin),

		EbayClientID:     os.Getenv("EBAY_CLIENT_ID"),
		EbayClientSecret: os.Getenv("EBAY_CLIENT_SECRET"),
		EbaySandbox:      strings.EqualFold(os.Getenv("EBAY_ENV"), "SANDBOX"),
		EbayAppID:        os.Getenv("EBAY_APP_ID"),

		SupabaseURL:            os.Getenv("SUPABASE_URL"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseBucket:         getenv("SUPABASE_BUCKET", "estimates"),

		Provider: getenv("PROVIDER", ProviderBrowse),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
