package main

//
//  @title           mpdash API
//  @version         1.0
//  @description     Marketplace dashboard backend: live orders, sales, incomes and stocks, plus a Postgres archive.
//  @termsOfService  https://github.com/guttosm/mpdash
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/mpdash
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        resources
//  @tag.description Live marketplace data, normalized to a list
//
//  @tag.name        archive
//  @tag.description Sync marketplace pages into Postgres
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/guttosm/mpdash/config"
	_ "github.com/guttosm/mpdash/docs" // swagger docs
	"github.com/guttosm/mpdash/internal/app"
	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/logger"
	"github.com/guttosm/mpdash/internal/service"
	"github.com/guttosm/mpdash/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runFetch fetches one resource page and writes {"raw":...,"list":...} to w.
// Only stocks may omit dateFrom; it then defaults to today.
func runFetch(ctx context.Context, fetcher service.Fetcher, r models.Resource, f models.QueryFilter, w io.Writer) error {
	f, err := f.ResolveDateFrom([]models.Resource{r}, time.Now())
	if err != nil {
		return err
	}
	res, err := fetcher.Fetch(ctx, r, f)
	if err != nil {
		return err
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// main is the entry point of the mpdash application.
//
// Modes (selected via --mode flag):
//   - api:   Starts the REST API (default).
//   - fetch: Fetches one page of --resource and prints it as JSON.
//   - sync:  Archives one page of each of --resources into Postgres.
//
// Flags:
//   - --mode: Execution mode ("api", "fetch" or "sync"). Default: "api".
//   - --resource / --resources: resource for fetch, comma list for sync (default all).
//   - --date-from, --date-to, --limit, --page: query filter.
//   - --parallel: concurrent resources during sync (0 = auto).
//   - --force: re-sync pages already archived.
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Initialize JSON logger before config so config warnings are structured
	logger.Init()

	// Load configuration from environment or .env file
	config.LoadConfig()

	mode := flag.String("mode", "api", "Mode: api, fetch or sync")
	resource := flag.String("resource", string(models.Orders), "Resource to fetch (fetch mode)")
	resources := flag.String("resources", "", "Comma-separated resources to sync (default all)")
	dateFrom := flag.String("date-from", "", "dateFrom filter (YYYY-MM-DD); required unless only stocks are requested")
	dateTo := flag.String("date-to", "", "dateTo filter (YYYY-MM-DD); ignored for stocks")
	limit := flag.Int("limit", models.DefaultLimit, "Page size")
	page := flag.Int("page", models.DefaultPage, "Page number")
	parallel := flag.Int("parallel", config.AppConfig.Archive.Parallel, "How many resources to sync concurrently (0=auto)")
	force := flag.Bool("force", false, "Re-sync pages already archived, replacing their records")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	filter := models.QueryFilter{DateFrom: *dateFrom, DateTo: *dateTo, Limit: *limit, Page: *page}

	switch *mode {
	case "fetch":
		// stdout carries the fetched document
		logger.InitWriter(os.Stderr)

		r, err := models.ParseResource(*resource)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid resource")
		}
		c, err := app.NewClient(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("api client init error")
		}

		fctx, cancel := context.WithTimeout(ctx, config.AppConfig.Upstream.Timeout+5*time.Second)
		defer cancel()
		if err := runFetch(fctx, c, r, filter, os.Stdout); err != nil {
			logger.L().Fatal().Err(err).Str("resource", string(r)).Msg("fetch failed")
		}

	case "sync":
		list, err := models.ParseResources(*resources)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid resources")
		}
		filter, err = filter.ResolveDateFrom(list, time.Now())
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid filter")
		}
		c, err := app.NewClient(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("api client init error")
		}

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		svc := service.NewSyncService(c, storage.NewRecordsRepository(db), *parallel)
		reports, err := svc.Sync(ctx, list, filter, *force)
		if err != nil {
			logger.L().Error().Err(err).Msg("sync failed")
			_ = db.Close()
			os.Exit(1)
		}
		for _, rep := range reports {
			fmt.Printf("%-8s rows=%d skipped=%v\n", rep.Resource, rep.Rows, rep.Skipped)
		}
		logger.L().Info().Int("resources", len(reports)).Msg("sync completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
