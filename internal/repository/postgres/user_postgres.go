package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/user-stream-service/internal/cache"
	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/maxviazov/user-stream-service/internal/repository"
)

const (
	selectAllUsers  = `SELECT id, name, email, age FROM user_data ORDER BY id`
	selectUserPage  = `SELECT id, name, email, age FROM user_data ORDER BY id LIMIT $1 OFFSET $2`
	selectAges      = `SELECT age FROM user_data ORDER BY id`
	selectOlderThan = `SELECT id, name, email, age FROM user_data WHERE age > $1 ORDER BY id`
	countUsers      = `SELECT COUNT(*) FROM user_data`
)

type userRepository struct {
	pool  *pgxpool.Pool
	pages *cache.PageCache
}

// NewUserRepository builds the pgx-backed user repository. The page cache
// is optional; a nil cache turns FetchPage into a plain database read.
func NewUserRepository(pool *pgxpool.Pool, pages *cache.PageCache) repository.UserRepository {
	return &userRepository{pool: pool, pages: pages}
}

func (r *userRepository) FetchPage(ctx context.Context, p repository.Page) ([]model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if p.Limit <= 0 {
		return nil, repository.ErrInvalidPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	key := cache.Fingerprint(selectUserPage, p.Limit, p.Offset)
	return fetchPageCached(r.pages, key, func() ([]model.User, error) {
		rows, err := r.pool.Query(ctx, selectUserPage, p.Limit, p.Offset)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		defer rows.Close()

		page := make([]model.User, 0, p.Limit)
		for rows.Next() {
			var u model.User
			if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age); err != nil {
				return nil, repository.MapPgError(err)
			}
			page = append(page, u)
		}
		if err := rows.Err(); err != nil {
			return nil, repository.MapPgError(err)
		}
		return page, nil
	})
}

// fetchPageCached consults the page cache before hitting the database
// and stores the fetched page on a miss. Failed fetches are never cached.
func fetchPageCached(pages *cache.PageCache, key string, fetch func() ([]model.User, error)) ([]model.User, error) {
	if page, ok := pages.Get(key); ok {
		return page, nil
	}
	page, err := fetch()
	if err != nil {
		return nil, err
	}
	pages.Set(key, page)
	return page, nil
}

func (r *userRepository) Rows(ctx context.Context) (repository.UserCursor, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, selectAllUsers)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return &userCursor{rows: rows}, nil
}

func (r *userRepository) Ages(ctx context.Context) (repository.AgeCursor, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, selectAges)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return &ageCursor{rows: rows}, nil
}

func (r *userRepository) FetchAll(ctx context.Context) ([]model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return r.collect(ctx, selectAllUsers)
}

func (r *userRepository) FetchOlderThan(ctx context.Context, age int) ([]model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return r.collect(ctx, selectOlderThan, age)
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var n int
	if err := r.pool.QueryRow(ctx, countUsers).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

func (r *userRepository) collect(ctx context.Context, sql string, args ...any) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

// userCursor adapts pgx.Rows to the repository cursor contract. The row
// is scanned inside Next so callers only ever see fully decoded values.
type userCursor struct {
	rows pgx.Rows
	cur  model.User
	err  error
}

func (c *userCursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.err = repository.MapPgError(c.rows.Err())
		return false
	}
	var u model.User
	if err := c.rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age); err != nil {
		c.err = repository.MapPgError(err)
		c.rows.Close()
		return false
	}
	c.cur = u
	return true
}

func (c *userCursor) User() model.User { return c.cur }
func (c *userCursor) Err() error       { return c.err }
func (c *userCursor) Close()           { c.rows.Close() }

type ageCursor struct {
	rows pgx.Rows
	cur  int
	err  error
}

func (c *ageCursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.err = repository.MapPgError(c.rows.Err())
		return false
	}
	var age int
	if err := c.rows.Scan(&age); err != nil {
		c.err = repository.MapPgError(err)
		c.rows.Close()
		return false
	}
	c.cur = age
	return true
}

func (c *ageCursor) Age() int   { return c.cur }
func (c *ageCursor) Err() error { return c.err }
func (c *ageCursor) Close()     { c.rows.Close() }

// helper to assert we didn't accidentally nil the pool
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}

var _ repository.UserRepository = (*userRepository)(nil)
