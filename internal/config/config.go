package config

import (
	"github.com/maxviazov/user-stream-service/internal/logger"
)

// AppConfig identifies the running binary in logs and diagnostics.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
}

// PostgresConfig carries connection parameters and pool tuning knobs.
// Credentials are expected from the environment in real deployments.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"gt=0"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname" validate:"required"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// CacheConfig tunes the injected page cache. Disabled means the
// repository goes straight to the database on every fetch.
type CacheConfig struct {
	Enabled    bool  `mapstructure:"enabled"`
	MaxEntries int64 `mapstructure:"max_entries" validate:"gte=0"`
	TTLSeconds int   `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// StreamConfig holds the defaults for the streaming use cases.
type StreamConfig struct {
	DefaultBatchSize int         `mapstructure:"default_batch_size" validate:"gt=0"`
	FilterAge        int         `mapstructure:"filter_age" validate:"gte=0"`
	OlderThanAge     int         `mapstructure:"older_than_age" validate:"gte=0"`
	Cache            CacheConfig `mapstructure:"cache"`
}

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Stream   StreamConfig        `mapstructure:"stream"`
}
