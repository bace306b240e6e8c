package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/antique-pricer/backend/config"
	"github.com/antique-pricer/backend/internal/ebay"
	"github.com/antique-pricer/backend/internal/pricing"
	"github.com/lithammer/dedent"
)

var usage = dedent.Dedent(`
	Query a comp provider directly and print the results.

	Credentials are read from the environment (EBAY_CLIENT_ID,
	EBAY_CLIENT_SECRET for -provider browse; EBAY_APP_ID for -provider
	sold). Without credentials the provider returns no comps.
`)

func main() {
	query := flag.String("q", "", "Search query")
	providerName := flag.String("provider", config.ProviderBrowse, "Provider: browse, sold or both")
	categoryID := flag.String("category-id", "", "Upstream category filter")
	limit := flag.Int("limit", 12, "Maximum number of comps")
	rawJSON := flag.Bool("json", false, "Output raw JSON only")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fmt.Fprintf(os.Stderr, "\nUsage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *query == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadEnvFile()
	cfg := config.Load()
	cfg.Provider = *providerName
	provider := buildProvider(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	comps, err := provider.Search(ctx, *query, *categoryID, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *rawJSON {
		jsonBytes, _ := json.MarshalIndent(comps, "", "  ")
		fmt.Println(string(jsonBytes))
		return
	}

	fmt.Printf("Found %d comps via %s\n\n", len(comps), provider.Source())
	for i, c := range comps {
		date := ""
		if c.EndedAt != nil {
			date = " ended " + *c.EndedAt
		}
		fmt.Printf("%2d. [%s] %s - %.2f %s%s\n    %s\n", i+1, c.Status, c.Title, c.Price, c.Currency, date, c.URL)
	}
}

func buildProvider(cfg config.Config) pricing.Provider {
	browse := ebay.NewBrowseProvider(ebay.BrowseOpts{
		ClientID:     cfg.EbayClientID,
		ClientSecret: cfg.EbayClientSecret,
		Sandbox:      cfg.EbaySandbox,
	})
	sold := ebay.NewFindingProvider(ebay.FindingOpts{
		AppID: cfg.EbayAppID,
	})

	switch cfg.Provider {
	case config.ProviderSold:
		return sold
	case config.ProviderBoth:
		return &pricing.PairedProvider{Active: browse, Sold: sold}
	default:
		return browse
	}
}
