package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxviazov/user-stream-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	// Minimal YAML; credentials come from ENV
	yaml := `
app:
  name: user-stream-service
  version: 0.1.0
  env: test

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1

stream:
  default_batch_size: 25
  filter_age: 25
  older_than_age: 40
  cache:
    enabled: true
    max_entries: 64
    ttl_seconds: 10
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DBNAME", "testdb")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Postgres.User != "testuser" || cfg.Postgres.Password != "testpass" || cfg.Postgres.DBName != "testdb" {
		t.Fatalf("env overrides not applied: got user=%q pass=%q db=%q", cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	}
	if cfg.Postgres.Host != "127.0.0.1" || cfg.Postgres.Port != 5432 || cfg.Postgres.SSLMode != "disable" {
		t.Fatalf("yaml values not loaded as expected: host=%q port=%d sslmode=%q", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.SSLMode)
	}
	if cfg.Stream.DefaultBatchSize != 25 {
		t.Fatalf("expected stream.default_batch_size 25, got %d", cfg.Stream.DefaultBatchSize)
	}
	if !cfg.Stream.Cache.Enabled || cfg.Stream.Cache.MaxEntries != 64 || cfg.Stream.Cache.TTLSeconds != 10 {
		t.Fatalf("cache block not loaded as expected: %+v", cfg.Stream.Cache)
	}
}

func TestConfigLoad_DefaultsApplied(t *testing.T) {
	yaml := `
postgres:
  host: localhost
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_DBNAME", "d")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.Port != 5432 {
		t.Fatalf("expected default port 5432, got %d", cfg.Postgres.Port)
	}
	if cfg.Stream.DefaultBatchSize != 50 || cfg.Stream.FilterAge != 25 || cfg.Stream.OlderThanAge != 40 {
		t.Fatalf("stream defaults not applied: %+v", cfg.Stream)
	}
	if cfg.App.Name != "user-stream-service" {
		t.Fatalf("app defaults not applied: %+v", cfg.App)
	}
}

func TestConfigLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config file, got nil")
	}
}

func TestConfigLoad_MissingRequiredValuesFails(t *testing.T) {
	yaml := `
postgres:
  port: 5432
`
	path := writeTempConfig(t, yaml)

	// Ensure credentials are not present anywhere.
	t.Setenv("APP_POSTGRES_HOST", "")
	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_DBNAME", "")

	_, err := config.Load(path)
	if err == nil {
		t.Fatalf("expected validation error when required values are missing, got nil")
	}
}
