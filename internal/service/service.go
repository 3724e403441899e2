// Package service holds use-case orchestration over the row streamer.
// Kept intentionally lean: only iteration policy, downstream filtering
// and aggregation; no storage details leak up to the CLI.
package service

import (
	"context"

	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/maxviazov/user-stream-service/internal/stream"
)

// VisitFunc receives one row at a time. Returning an error stops the
// stream early; the underlying cursor is still released.
type VisitFunc func(model.User) error

// AverageResult is the outcome of a streaming mean over the age column.
type AverageResult struct {
	Average float64
	Rows    int
}

// UserStreamService defines the streaming use cases exposed to the CLI.
type UserStreamService interface {
	// StreamUsers visits every row in source order, exactly once.
	StreamUsers(ctx context.Context, visit VisitFunc) (int, error)

	// ProcessBatches streams the table in batches and visits only rows
	// passing the configured age filter. Returns the number visited.
	ProcessBatches(ctx context.Context, batchSize int, visit VisitFunc) (int, error)

	// AverageAge computes the arithmetic mean of the age column with a
	// running mean, never buffering the column.
	AverageAge(ctx context.Context) (AverageResult, error)

	// FetchConcurrently runs the double scan with the configured threshold.
	FetchConcurrently(ctx context.Context) (stream.ConcurrentResult, error)
}
