package service

import (
	"context"

	"github.com/maxviazov/user-stream-service/internal/stream"
	"github.com/rs/zerolog"
)

type userStreamService struct {
	streamer  *stream.Streamer
	filterAge int
	olderThan int
	log       zerolog.Logger
}

// NewUserStreamService wires the streamer with the configured thresholds:
// filterAge is the downstream batch filter (rows must be strictly older),
// olderThan is the concurrent scan's age threshold.
func NewUserStreamService(streamer *stream.Streamer, filterAge, olderThan int, logger zerolog.Logger) UserStreamService {
	l := logger.With().Str("module", "service").Str("component", "users").Logger()
	return &userStreamService{streamer: streamer, filterAge: filterAge, olderThan: olderThan, log: l}
}

func (s *userStreamService) StreamUsers(ctx context.Context, visit VisitFunc) (int, error) {
	it := s.streamer.Rows(ctx)
	defer it.Close()

	n := 0
	for it.Next() {
		if err := visit(it.User()); err != nil {
			return n, err
		}
		n++
	}
	return n, it.Err()
}

func (s *userStreamService) ProcessBatches(ctx context.Context, batchSize int, visit VisitFunc) (int, error) {
	it, err := s.streamer.Batches(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	visited := 0
	for it.Next() {
		for _, u := range it.Page() {
			if u.Age <= s.filterAge {
				continue
			}
			if err := visit(u); err != nil {
				return visited, err
			}
			visited++
		}
	}
	s.log.Debug().Int("batch_size", batchSize).Int("visited", visited).Msg("batch processing done")
	return visited, it.Err()
}

func (s *userStreamService) AverageAge(ctx context.Context) (AverageResult, error) {
	it := s.streamer.Ages(ctx)
	defer it.Close()

	var mean float64
	n := 0
	for it.Next() {
		n++
		// Incremental mean; no buffering, stable for long streams.
		mean += (float64(it.Age()) - mean) / float64(n)
	}
	if err := it.Err(); err != nil {
		return AverageResult{}, err
	}
	return AverageResult{Average: mean, Rows: n}, nil
}

func (s *userStreamService) FetchConcurrently(ctx context.Context) (stream.ConcurrentResult, error) {
	return s.streamer.FetchConcurrently(ctx, s.olderThan)
}

var _ UserStreamService = (*userStreamService)(nil)
