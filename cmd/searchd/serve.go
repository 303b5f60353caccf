package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/catalog"
	"github.com/johnleydelgado/legacy-app-sub005/internal/config"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db/postgres"
	dbValkey "github.com/johnleydelgado/legacy-app-sub005/internal/db/valkey"
	"github.com/johnleydelgado/legacy-app-sub005/internal/metrics"
	"github.com/johnleydelgado/legacy-app-sub005/internal/repository/enrichcache"
	"github.com/johnleydelgado/legacy-app-sub005/internal/repository/enrichment"
	searchrepo "github.com/johnleydelgado/legacy-app-sub005/internal/repository/search"
	chiTransport "github.com/johnleydelgado/legacy-app-sub005/internal/transport/chi"
	healthuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/health"
	searchuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/search"
	"github.com/johnleydelgado/legacy-app-sub005/internal/version"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting searchd",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", config.GetEnv()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("cache", cfg.Cache.Active()),
	)

	if cfg.Database.MigrateOnStart {
		v, err := postgres.Migrate(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("migrate on start: %w", err)
		}
		logger.Info("Schema migrated", zap.Uint("version", v))
	}

	store, err := postgres.NewStore(ctx, postgres.Config{URL: cfg.Database.URL, MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	metrics.Register()

	// Pass a nil interface, not a typed nil pointer, when the cache is off.
	var cachePinger healthuc.Pinger
	var cache *dbValkey.Store
	if cfg.Cache.Active() {
		cache, err = dbValkey.NewStore(dbValkey.Config{Addrs: cfg.Cache.Addrs, Password: cfg.Cache.Password})
		if err != nil {
			return fmt.Errorf("create cache store: %w", err)
		}
		defer cache.Close()
		if err := cache.WaitForReady(ctx, readiness); err != nil {
			return fmt.Errorf("cache not ready: %w", err)
		}
		cachePinger = cache
		logger.Info("Connected to enrichment cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	wrap := func(e enrichcache.Cacheable) searchuc.Enricher {
		if cache == nil {
			return e
		}
		return enrichcache.New(e, cache, time.Duration(cfg.Cache.TTLSec)*time.Second, metrics.EnrichmentCacheTotal, logger)
	}

	customer := searchuc.Enrichment{Enricher: wrap(enrichment.NewCustomerSummary(store)), Policy: searchuc.FailPage}
	searchSvc := searchuc.New(
		searchrepo.New(store),
		catalog.Registry(),
		searchuc.WithConcurrency(cfg.Search.EnrichmentConcurrency),
		searchuc.WithEnrichment(catalog.Customers,
			searchuc.Enrichment{Enricher: wrap(enrichment.NewContacts(store)), Policy: searchuc.Substitute},
			searchuc.Enrichment{Enricher: wrap(enrichment.NewAddresses(store)), Policy: searchuc.Substitute},
			searchuc.Enrichment{Enricher: wrap(enrichment.NewOrderStats(store)), Policy: searchuc.Substitute},
		),
		searchuc.WithEnrichment(catalog.Quotes, customer),
		searchuc.WithEnrichment(catalog.Orders, customer),
		searchuc.WithEnrichment(catalog.Invoices, customer),
	)
	healthSvc := healthuc.New(store, cachePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	logger.Info("Server stopped gracefully")
	return nil
}
