package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/scry-study/internal/catalog"
	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/events"
	"github.com/phrazzld/scry-study/internal/loader"
	"github.com/phrazzld/scry-study/internal/session"
)

// remoteFetchTimeout bounds each request made to a remote data base URL.
const remoteFetchTimeout = 15 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Event system
	eventEmitter events.EventEmitter

	source   loader.Source
	catalog  *catalog.Service
	loader   *loader.Loader
	registry *session.Registry

	// watcher is nil unless hot reload is enabled for a local data directory.
	watcher *catalog.Watcher

	cancelBackground context.CancelFunc
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.LoggingHandler(logger))
	app.eventEmitter = emitter

	source, err := newSource(cfg.Data)
	if err != nil {
		return nil, err
	}
	app.source = source

	app.catalog = catalog.NewService(source, cfg.Data.CatalogFile, logger)
	app.loader = loader.New(source, app.catalog, logger)
	app.registry = session.NewRegistry(session.RegistryConfig{
		MaxSessions: cfg.Session.MaxSessions,
		ShuffleSeed: cfg.Session.ShuffleSeed,
		IdleTimeout: cfg.Session.IdleTimeout,
	}, app.eventEmitter, logger)

	if cfg.Watch.Enabled {
		if cfg.Data.BaseURL != "" {
			logger.Warn("catalog watching ignored for remote data", "base_url", cfg.Data.BaseURL)
		} else {
			app.watcher = catalog.NewWatcher(
				cfg.Data.Dir,
				app.catalog,
				time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
				logger,
			)
		}
	}

	logger.Info("application initialized",
		"catalog_file", cfg.Data.CatalogFile,
		"max_sessions", cfg.Session.MaxSessions,
		"seeded_shuffle", cfg.Session.ShuffleSeed != 0)
	return app, nil
}

// newSource selects the document source: a base URL when configured,
// otherwise the local data directory.
func newSource(cfg config.DataConfig) (loader.Source, error) {
	if cfg.BaseURL == "" {
		return loader.NewDirSource(cfg.Dir), nil
	}
	source, err := loader.NewHTTPSource(cfg.BaseURL, &http.Client{Timeout: remoteFetchTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to configure remote data source: %w", err)
	}
	return source, nil
}

// startBackground runs background workers until ctx is cancelled or cleanup
// is called.
func (app *application) startBackground(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	app.cancelBackground = cancel

	if idle := app.config.Session.IdleTimeout; idle > 0 {
		go app.pruneSessions(ctx, idle)
	}

	if app.watcher != nil {
		go func() {
			if err := app.watcher.Run(ctx); err != nil {
				app.logger.Error("catalog watcher stopped", "error", err)
			}
		}()
	}
}

// pruneSessions drops idle sessions every half idle period until ctx ends.
func (app *application) pruneSessions(ctx context.Context, idle time.Duration) {
	ticker := time.NewTicker(max(idle/2, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.registry.Prune(ctx, idle)
		}
	}
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.cancelBackground != nil {
		app.cancelBackground()
	}
	app.logger.Info("application cleanup completed", "active_sessions", app.registry.Len())
}
