package stream

import (
	"context"

	"github.com/maxviazov/user-stream-service/internal/model"
	"golang.org/x/sync/errgroup"
)

// ConcurrentResult joins the two completed scans. There are no partial
// results: either both slices are populated or the whole call failed.
type ConcurrentResult struct {
	All   []model.User
	Older []model.User
}

// FetchConcurrently runs two independent full scans in parallel — the
// whole table, and rows with age strictly greater than olderThan — each
// on its own pool acquisition. The scans share no mutable state; a
// failure in either cancels the sibling and fails the call.
func (s *Streamer) FetchConcurrently(ctx context.Context, olderThan int) (ConcurrentResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	var res ConcurrentResult

	g.Go(func() error {
		all, err := s.repo.FetchAll(ctx)
		if err != nil {
			return err
		}
		res.All = all
		s.log.Debug().Int("rows", len(all)).Msg("all users fetched")
		return nil
	})
	g.Go(func() error {
		older, err := s.repo.FetchOlderThan(ctx, olderThan)
		if err != nil {
			return err
		}
		res.Older = older
		s.log.Debug().Int("rows", len(older)).Int("older_than", olderThan).Msg("older users fetched")
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("concurrent fetch failed")
		return ConcurrentResult{}, err
	}
	return res, nil
}
