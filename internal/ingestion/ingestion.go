package ingestion

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/logger"
	"github.com/guttosm/mpdash/internal/storage"
)

const defaultMaxParallel = 4

// Fetcher is the upstream surface the sync depends on.
type Fetcher interface {
	Fetch(ctx context.Context, r models.Resource, f models.QueryFilter) (*models.Result, error)
}

// SyncResources fetches one page of each resource and archives its records.
//
//   - fetcher:   upstream client.
//   - repo:      archive repository.
//   - resources: resources to sync (duplicates are the caller's problem).
//   - filter:    date/paging filter; stocks ignore DateTo.
//   - parallel:  max concurrent resources (0 = min(4, NumCPU)).
//   - force:     re-sync pages already in the sync log, replacing their rows.
//
// Behavior:
//   - A page already present in the sync log is skipped unless force is set.
//   - The page is fetched before anything is written. Its rows and its sync
//     log entry are then stored in one transaction, so a failed fetch or
//     write leaves a previously archived page untouched.
//   - If any resource fails, the rest are cancelled and that error is returned.
//
// Returns one report per resource, in input order.
func SyncResources(ctx context.Context, fetcher Fetcher, repo storage.RecordsRepository, resources []models.Resource, filter models.QueryFilter, parallel int, force bool) ([]models.SyncReport, error) {
	log := logger.Ctx(ctx, logger.Component("ingestion"))

	maxParallel := defaultMaxParallel
	if parallel > 0 {
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	log.Info().Int("resources", len(resources)).Int("max_parallel", maxParallel).Bool("force", force).Msg("sync start")

	reports := make([]models.SyncReport, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, res := range resources {
		idx := i
		r := res

		g.Go(func() error {
			start := time.Now()
			key := models.KeyFor(r, filter)

			report, err := syncOne(gctx, fetcher, repo, key, filter, force)
			if err != nil {
				log.Error().Str("resource", string(r)).Dur("elapsed", time.Since(start)).Err(err).Msg("sync failed")
				return fmt.Errorf("sync %s: %w", r, err)
			}

			reports[idx] = report

			log.Info().
				Int("idx", idx+1).
				Int("total", len(resources)).
				Str("resource", string(r)).
				Int("rows", report.Rows).
				Bool("skipped", report.Skipped).
				Dur("elapsed", time.Since(start)).
				Msg("resource done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func syncOne(ctx context.Context, fetcher Fetcher, repo storage.RecordsRepository, key models.SyncKey, filter models.QueryFilter, force bool) (models.SyncReport, error) {
	report := models.SyncReport{Resource: key.Resource}

	// saves the upstream call for archived pages; ArchivePage re-checks under its lock
	exists, err := repo.HasSync(ctx, key)
	if err != nil {
		return report, fmt.Errorf("check sync log: %w", err)
	}
	if exists && !force {
		report.Skipped = true
		return report, nil
	}

	result, err := fetcher.Fetch(ctx, key.Resource, filter)
	if err != nil {
		return report, fmt.Errorf("fetch: %w", err)
	}

	records, err := toRecords(key, result.List, time.Now().UTC())
	if err != nil {
		return report, err
	}

	written, err := repo.ArchivePage(ctx, key, records, force)
	if err != nil {
		return report, fmt.Errorf("archive page: %w", err)
	}
	if !written {
		report.Skipped = true
		return report, nil
	}

	report.Rows = len(records)
	return report, nil
}
