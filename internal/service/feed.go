package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/mpdash/internal/domain/models"
)

// Fetcher is the upstream surface the services read from.
type Fetcher interface {
	Fetch(ctx context.Context, r models.Resource, f models.QueryFilter) (*models.Result, error)
}

// FeedService serves live resource data to the dashboard.
type FeedService interface {
	List(ctx context.Context, r models.Resource, f models.QueryFilter) (*models.Result, error)
	Overview(ctx context.Context, f models.QueryFilter) (*models.Overview, error)
}

type feedService struct {
	fetcher Fetcher
}

func NewFeedService(fetcher Fetcher) FeedService {
	return &feedService{fetcher: fetcher}
}

func (s *feedService) List(ctx context.Context, r models.Resource, f models.QueryFilter) (*models.Result, error) {
	return s.fetcher.Fetch(ctx, r, f)
}

// Overview fetches every resource concurrently and reports the length of each
// normalized list. The first failure cancels the other fetches.
func (s *feedService) Overview(ctx context.Context, f models.QueryFilter) (*models.Overview, error) {
	counts := make([]int, len(models.AllResources))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range models.AllResources {
		idx, res := i, r
		g.Go(func() error {
			out, err := s.fetcher.Fetch(gctx, res, f)
			if err != nil {
				return fmt.Errorf("%s: %w", res, err)
			}
			counts[idx] = len(out.List)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov := &models.Overview{Filter: f, Counts: make(map[models.Resource]int, len(counts))}
	for i, r := range models.AllResources {
		ov.Counts[r] = counts[i]
	}
	return ov, nil
}
