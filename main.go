package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/antique-pricer/backend/config"
	"github.com/antique-pricer/backend/internal/ebay"
	"github.com/antique-pricer/backend/internal/httpapi"
	"github.com/antique-pricer/backend/internal/pricing"
	"github.com/antique-pricer/backend/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	cfg := config.Load()

	provider := buildProvider(cfg)
	log.Info().Str("provider", provider.Source()).Msg("comp provider selected")

	images := storage.NewSupabase(storage.SupabaseOpts{
		URL:            cfg.SupabaseURL,
		ServiceRoleKey: cfg.SupabaseServiceRoleKey,
		Bucket:         cfg.SupabaseBucket,
	})
	if !images.Configured() {
		log.Warn().Msg("image storage not configured, image URLs will be null")
	}

	estimator := pricing.NewEstimator(provider)
	server := httpapi.NewServer(estimator, images)
	router := httpapi.NewRouter(server, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Create context that cancels on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutdown with error")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}

// buildProvider selects the comp provider once at startup. An unknown value
// falls back to the active-listing provider.
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
