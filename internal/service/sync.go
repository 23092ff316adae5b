package service

import (
	"context"

	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/ingestion"
	"github.com/guttosm/mpdash/internal/storage"
)

// SyncService archives upstream pages into Postgres and reads back the sync log.
type SyncService interface {
	Sync(ctx context.Context, resources []models.Resource, f models.QueryFilter, force bool) ([]models.SyncReport, error)
	History(ctx context.Context, r models.Resource, limit int) ([]models.SyncEntry, error)
}

type syncService struct {
	fetcher  Fetcher
	repo     storage.RecordsRepository
	parallel int
}

// NewSyncService builds a SyncService. parallel caps concurrent resources;
// zero picks a default.
func NewSyncService(fetcher Fetcher, repo storage.RecordsRepository, parallel int) SyncService {
	return &syncService{fetcher: fetcher, repo: repo, parallel: parallel}
}

func (s *syncService) Sync(ctx context.Context, resources []models.Resource, f models.QueryFilter, force bool) ([]models.SyncReport, error) {
	if len(resources) == 0 {
		resources = models.AllResources
	}
	return ingestion.SyncResources(ctx, s.fetcher, s.repo, resources, f, s.parallel, force)
}

func (s *syncService) History(ctx context.Context, r models.Resource, limit int) ([]models.SyncEntry, error) {
	return s.repo.ListSyncLog(ctx, r, limit)
}
