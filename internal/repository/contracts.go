package repository

import (
	"context"

	"github.com/maxviazov/user-stream-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UserCursor walks an already-issued query one row at a time without
// materializing the result set. The shape mirrors pgx.Rows: Next reports
// whether a row is available, Err reports what ended the iteration, and
// Close releases the underlying connection. Close is safe to call more
// than once and must be called on every exit path.
type UserCursor interface {
	Next() bool
	User() model.User
	Err() error
	Close()
}

// AgeCursor is the single-column projection used for streaming aggregation.
type AgeCursor interface {
	Next() bool
	Age() int
	Err() error
	Close()
}

// UserRepository declares read operations over the user_data table.
// One fetch primitive (FetchPage) backs all paging; the cursor methods
// hold a connection open for the lifetime of the scan.
type UserRepository interface {
	// FetchPage returns up to p.Limit rows starting at p.Offset, in id
	// order. Past-the-end offsets yield an empty slice, never an error.
	FetchPage(ctx context.Context, p Page) ([]model.User, error)

	// Rows opens one unbounded ordered scan over the whole table.
	Rows(ctx context.Context) (UserCursor, error)

	// Ages opens an unbounded scan projected to the age column.
	Ages(ctx context.Context) (AgeCursor, error)

	// FetchAll materializes the whole table in id order.
	FetchAll(ctx context.Context) ([]model.User, error)

	// FetchOlderThan materializes all rows with age strictly greater than age.
	FetchOlderThan(ctx context.Context, age int) ([]model.User, error)

	Count(ctx context.Context) (int, error)
}

// Seeder prepares the user_data table and loads rows into it.
// It exists for the operator-facing seed command, not for the streamer.
type Seeder interface {
	EnsureSchema(ctx context.Context) error
	ImportCSV(ctx context.Context, path string) (int, error)
}
