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
	Run the full estimation pipeline for a category and notes without the
	HTTP server, and print the resulting JSON.

	Credentials are read from the environment the same way the server
	reads them. Without credentials the estimate degrades to an empty,
	low confidence result.
`)

func main() {
	category := flag.String("category", "", "Item category (or not_sure)")
	notes := flag.String("notes", "", "Free-text item notes")
	providerName := flag.String("provider", "", "Override PROVIDER: browse, sold or both")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fmt.Fprintf(os.Stderr, "\nUsage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	config.LoadEnvFile()
	cfg := config.Load()
	if *providerName != "" {
		cfg.Provider = *providerName
	}

	browse := ebay.NewBrowseProvider(ebay.BrowseOpts{
		ClientID:     cfg.EbayClientID,
		ClientSecret: cfg.EbayClientSecret,
		Sandbox:      cfg.EbaySandbox,
	})
	sold := ebay.NewFindingProvider(ebay.FindingOpts{
		AppID: cfg.EbayAppID,
	})

	var provider pricing.Provider
	switch cfg.Provider {
	case config.ProviderSold:
		provider = sold
	case config.ProviderBoth:
		provider = &pricing.PairedProvider{Active: browse, Sold: sold}
	default:
		provider = browse
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	estimator := pricing.NewEstimator(provider)
	result, err := estimator.Estimate(ctx, *category, *notes, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jsonBytes, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(jsonBytes))
}
