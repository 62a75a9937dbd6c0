// Package app wires configuration into the search service components shared
// by the HTTP server and the command line tool.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/mina-service/internal/adapter/fallback"
	"github.com/user/mina-service/internal/adapter/websearch"
	"github.com/user/mina-service/internal/delivery/http/handler"
	"github.com/user/mina-service/internal/delivery/http/router"
	"github.com/user/mina-service/internal/extract"
	"github.com/user/mina-service/internal/repository"
	"github.com/user/mina-service/internal/usecase"
	"github.com/user/mina-service/pkg/config"
	"github.com/user/mina-service/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Searcher    usecase.Searcher
	Engine      *extract.Engine
	ProviderIDs []string
}

// Build creates the providers, the extraction engine and the search use case.
// No configured providers is valid: searches then follow the upstream policy.
func Build(cfg *config.Config, log *zap.Logger) (*App, error) {
	metrics.Init()

	factory := websearch.NewFactory()
	providers := make([]repository.SearchProvider, 0, len(cfg.Search.Providers))
	ids := make([]string, 0, len(cfg.Search.Providers))
	for _, pc := range cfg.Search.Providers {
		p, err := factory.Create(&websearch.ProviderConfig{
			ID:      pc.ID,
			APIHost: pc.APIHost,
			APIKey:  pc.APIKey,
			Timeout: pc.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", pc.ID, err)
		}
		providers = append(providers, p)
		ids = append(ids, p.Name())
	}
	if len(providers) == 0 {
		log.Warn("no search providers configured", zap.Strings("available", factory.ListProviders()))
	}

	engine, err := extract.NewDefaultEngine(extract.WithLogger(log.Named("extract")))
	if err != nil {
		return nil, fmt.Errorf("failed to load extraction rules: %w", err)
	}

	var dataset repository.FallbackDataset
	if cfg.Search.OnUpstreamUnavailable == config.PolicyFallbackDataset {
		dataset, err = fallback.New(time.Now)
		if err != nil {
			return nil, fmt.Errorf("failed to load fallback dataset: %w", err)
		}
	}

	searcher := usecase.NewSearchUseCase(providers, engine, dataset, usecase.Options{
		HitThreshold:    cfg.Search.HitThreshold,
		ResultsPerQuery: cfg.Search.ResultsPerQuery,
		PageSize:        cfg.Search.PageSize,
		Policy:          usecase.Policy(cfg.Search.OnUpstreamUnavailable),
	}, log.Named("search"))

	log.Info("search service ready",
		zap.Strings("providers", ids),
		zap.String("rules_version", engine.Version()),
		zap.String("on_upstream_unavailable", cfg.Search.OnUpstreamUnavailable),
	)

	return &App{Searcher: searcher, Engine: engine, ProviderIDs: ids}, nil
}

func (a *App) NewServer(cfg config.ServerConfig, log *zap.Logger) *http.Server {
	h := handler.NewHandler(a.Searcher, log.Named("http"), a.Engine.Version(), a.ProviderIDs)
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(h, log, cfg.RequestTimeout),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exiting")
	return nil
}
