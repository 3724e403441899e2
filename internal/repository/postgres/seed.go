package postgres

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/maxviazov/user-stream-service/internal/repository"
	"github.com/rs/zerolog"
)

const (
	createUserTable = `
		CREATE TABLE IF NOT EXISTS user_data (
			id    CHAR(36) PRIMARY KEY,
			name  VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age   INT NOT NULL
		)`
	insertUser = `INSERT INTO user_data (id, name, email, age) VALUES ($1, $2, $3, $4)`
)

type seeder struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewSeeder builds the operator-facing table setup and CSV import helper.
func NewSeeder(pool *pgxpool.Pool, logger zerolog.Logger) repository.Seeder {
	l := logger.With().Str("component", "seeder").Logger()
	return &seeder{pool: pool, log: l}
}

func (s *seeder) EnsureSchema(ctx context.Context) error {
	if err := ensurePool(s.pool); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, createUserTable); err != nil {
		return repository.MapPgError(err)
	}
	s.log.Info().Msg("user_data table ready")
	return nil
}

// ImportCSV loads name,email,age rows from path, generating a UUID per
// row. The import is skipped when the table already holds data, and runs
// inside one transaction so a malformed file leaves nothing behind.
func (s *seeder) ImportCSV(ctx context.Context, path string) (int, error) {
	if err := ensurePool(s.pool); err != nil {
		return 0, err
	}

	var existing int
	if err := s.pool.QueryRow(ctx, countUsers).Scan(&existing); err != nil {
		return 0, repository.MapPgError(err)
	}
	if existing > 0 {
		s.log.Info().Int("rows", existing).Msg("user_data already populated, skipping import")
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return 0, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	defer func() {
		// No-op once committed.
		_ = tx.Rollback(context.Background())
	}()

	inserted := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read csv record: %w", err)
		}
		u, err := parseRecord(cols, record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", inserted+2, err)
		}
		if _, err := tx.Exec(ctx, insertUser, u.ID, u.Name, u.Email, u.Age); err != nil {
			return 0, repository.MapPgError(err)
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, repository.MapPgError(err)
	}
	s.log.Info().Int("rows", inserted).Str("file", path).Msg("csv import complete")
	return inserted, nil
}

// parseRecord turns one CSV record into a User. All fields are trimmed;
// a missing or blank id gets a generated UUID.
func parseRecord(cols columnIndexes, record []string) (model.User, error) {
	age, err := strconv.Atoi(strings.TrimSpace(record[cols.age]))
	if err != nil {
		return model.User{}, fmt.Errorf("invalid age %q: %w", record[cols.age], err)
	}
	u := model.User{
		Name:  strings.TrimSpace(record[cols.name]),
		Email: strings.TrimSpace(record[cols.email]),
		Age:   age,
	}
	if cols.id >= 0 {
		u.ID = strings.TrimSpace(record[cols.id])
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return u, nil
}

type columnIndexes struct {
	id, name, email, age int
}

// mapColumns resolves header names so column order in the file is free.
// The id column is optional; missing ids are generated on insert.
func mapColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{id: -1, name: -1, email: -1, age: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id", "user_id":
			cols.id = i
		case "name":
			cols.name = i
		case "email":
			cols.email = i
		case "age":
			cols.age = i
		}
	}
	if cols.name < 0 || cols.email < 0 || cols.age < 0 {
		return cols, fmt.Errorf("csv header must contain name, email and age columns, got %v", header)
	}
	return cols, nil
}

var _ repository.Seeder = (*seeder)(nil)
