// Package stream is the paginated row streamer: lazy, pull-based access
// to the user_data table built on a single primitive, "fetch page of size
// N at offset O". Nothing here materializes the full table.
package stream

import (
	"context"

	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/maxviazov/user-stream-service/internal/repository"
	"github.com/rs/zerolog"
)

// Streamer produces lazy sequences of rows or pages from a user repository.
// Every call opens its own sequence; sequences are finite, single-use and
// never share cursor state with each other.
type Streamer struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

func New(repo repository.UserRepository, logger zerolog.Logger) *Streamer {
	l := logger.With().Str("component", "streamer").Logger()
	return &Streamer{repo: repo, log: l}
}

// Rows opens one unbounded scan and forwards rows as they arrive.
//
//	it := s.Rows(ctx)
//	defer it.Close()
//	for it.Next() { use(it.User()) }
//
// The underlying connection is released when the scan is exhausted, when
// a fetch fails, or when the caller abandons the iterator via Close.
func (s *Streamer) Rows(ctx context.Context) *RowIterator {
	cursor, err := s.repo.Rows(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open row stream")
		return &RowIterator{err: err, done: true}
	}
	return &RowIterator{cursor: cursor, log: s.log}
}

// Batches streams the table as pages of batchSize rows, issuing one
// LIMIT/OFFSET fetch per Next call. The iterator owns its offset; it
// advances by batchSize after every non-empty page and stops at the
// first empty one. A short page does not end the stream on its own.
func (s *Streamer) Batches(ctx context.Context, batchSize int) (*PageIterator, error) {
	if batchSize <= 0 {
		return nil, repository.ErrInvalidPageSize
	}
	return &PageIterator{
		fetch: func(offset int) ([]model.User, error) {
			return s.repo.FetchPage(ctx, repository.Page{Limit: batchSize, Offset: offset})
		},
		size: batchSize,
		log:  s.log,
	}, nil
}

// Paginate performs a single page fetch with no iteration state. Offsets
// past the end of the table yield an empty page, never an error.
func (s *Streamer) Paginate(ctx context.Context, pageSize, offset int) ([]model.User, error) {
	if pageSize <= 0 {
		return nil, repository.ErrInvalidPageSize
	}
	return s.repo.FetchPage(ctx, repository.Page{Limit: pageSize, Offset: offset})
}

// LazyPaginate is Batches expressed through repeated Paginate calls
// starting at offset 0. Termination and advancement rules are identical,
// so both produce the same page sequence for the same inputs.
func (s *Streamer) LazyPaginate(ctx context.Context, pageSize int) (*PageIterator, error) {
	if pageSize <= 0 {
		return nil, repository.ErrInvalidPageSize
	}
	return &PageIterator{
		fetch: func(offset int) ([]model.User, error) {
			return s.Paginate(ctx, pageSize, offset)
		},
		size: pageSize,
		log:  s.log,
	}, nil
}

// Ages streams the age column only, for aggregation without buffering.
func (s *Streamer) Ages(ctx context.Context) *AgeIterator {
	cursor, err := s.repo.Ages(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open age stream")
		return &AgeIterator{err: err, done: true}
	}
	return &AgeIterator{cursor: cursor, log: s.log}
}

// RowIterator walks a full-table scan one row at a time. A data source
// failure mid-scan ends the iteration and is logged; Err reports it so
// callers can tell a failed stream from an exhausted one.
type RowIterator struct {
	cursor repository.UserCursor
	log    zerolog.Logger
	cur    model.User
	err    error
	done   bool
}

func (it *RowIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.cursor.Next() {
		it.done = true
		if err := it.cursor.Err(); err != nil {
			it.err = err
			it.log.Error().Err(err).Msg("row stream terminated early")
		}
		it.cursor.Close()
		return false
	}
	it.cur = it.cursor.User()
	return true
}

// User returns the row produced by the last successful Next.
func (it *RowIterator) User() model.User { return it.cur }

// Err reports the failure that ended iteration, if any.
func (it *RowIterator) Err() error { return it.err }

// Close releases the underlying cursor. Required when the caller stops
// before exhaustion; harmless otherwise.
func (it *RowIterator) Close() {
	if it.cursor != nil {
		it.cursor.Close()
	}
	it.done = true
}

// PageIterator drives repeated offset fetches. The offset is owned by the
// iterator instance, strictly increasing, and never shared or reset.
type PageIterator struct {
	fetch  func(offset int) ([]model.User, error)
	log    zerolog.Logger
	size   int
	offset int
	page   []model.User
	err    error
	done   bool
}

func (it *PageIterator) Next() bool {
	if it.done {
		return false
	}
	page, err := it.fetch(it.offset)
	if err != nil {
		it.err = err
		it.done = true
		it.log.Error().Err(err).Int("offset", it.offset).Msg("page stream terminated early")
		return false
	}
	if len(page) == 0 {
		it.done = true
		return false
	}
	it.page = page
	it.offset += it.size
	return true
}

// Page returns the page produced by the last successful Next.
func (it *PageIterator) Page() []model.User { return it.page }

// Err reports the failure that ended iteration, if any.
func (it *PageIterator) Err() error { return it.err }

// AgeIterator is the single-column variant of RowIterator.
type AgeIterator struct {
	cursor repository.AgeCursor
	log    zerolog.Logger
	cur    int
	err    error
	done   bool
}

func (it *AgeIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.cursor.Next() {
		it.done = true
		if err := it.cursor.Err(); err != nil {
			it.err = err
			it.log.Error().Err(err).Msg("age stream terminated early")
		}
		it.cursor.Close()
		return false
	}
	it.cur = it.cursor.Age()
	return true
}

func (it *AgeIterator) Age() int   { return it.cur }
func (it *AgeIterator) Err() error { return it.err }

func (it *AgeIterator) Close() {
	if it.cursor != nil {
		it.cursor.Close()
	}
	it.done = true
}
