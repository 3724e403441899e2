package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	// ErrInvalidPageSize rejects non-positive page or batch sizes. It is
	// raised eagerly at the call boundary, never deferred to the first fetch.
	ErrInvalidPageSize = errors.New("page size must be positive")

	// ErrConnection means the data source could not be reached at all.
	ErrConnection = errors.New("data source unreachable")

	// ErrQuery covers failed or malformed queries and constraint violations.
	ErrQuery = errors.New("query failed")
)

// MapPgError translates common Postgres failures into the domain taxonomy.
// I only map what higher layers handle explicitly; everything else passes
// through wrapped as a query failure so callers can errors.Is against it.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return errors.Join(ErrConnection, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ConnectionException, pgerrcode.ConnectionFailure,
			pgerrcode.ConnectionDoesNotExist, pgerrcode.SQLClientUnableToEstablishSQLConnection:
			return errors.Join(ErrConnection, err)
		default:
			return errors.Join(ErrQuery, err)
		}
	}
	return errors.Join(ErrQuery, err)
}
