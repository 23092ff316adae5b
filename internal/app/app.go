package app

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/mpdash/config"
	"github.com/guttosm/mpdash/internal/api"
	"github.com/guttosm/mpdash/internal/client"
	"github.com/guttosm/mpdash/internal/logger"
	"github.com/guttosm/mpdash/internal/service"
	"github.com/guttosm/mpdash/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the marketplace API client from config.AppConfig.Upstream.
//   - Connects to PostgreSQL when the archive is enabled.
//   - Wires the feed and sync services into the HTTP handler.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	c, err := NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize api client: %w", err)
	}

	feed := service.NewFeedService(c)

	var (
		db   *sql.DB
		sync service.SyncService
		ping func() error
	)
	if cfg.Archive.Enabled {
		// indirection for unit testing
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo := storage.NewRecordsRepository(db)
		sync = service.NewSyncService(c, repo, cfg.Archive.Parallel)
		ping = db.Ping
	} else {
		logger.L().Info().Msg("archive disabled; sync routes will answer 503")
	}

	handler := api.NewHandler(feed, sync)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(ping)
	healthHandler.Register(router)

	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	return router, cleanup, nil
}

// NewClient builds the marketplace API client described by cfg.Upstream.
func NewClient(cfg config.Config) (*client.Client, error) {
	opts := client.Options{
		BaseURL: cfg.Upstream.BaseURL,
		Origin:  cfg.Upstream.Origin,
		APIKey:  cfg.Upstream.APIKey,
	}
	if cfg.Upstream.Timeout > 0 {
		opts.HTTPClient = &http.Client{Timeout: cfg.Upstream.Timeout}
	}

	c, err := client.New(opts)
	if err != nil {
		return nil, err
	}
	logger.L().Info().Str("base_url", c.BaseURL()).Bool("key_set", cfg.Upstream.APIKey != "").Msg("api client ready")
	return c, nil
}
