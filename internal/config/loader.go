package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads the YAML config at path and applies APP_* environment
// overrides (dots in keys become underscores, so APP_POSTGRES_USER maps
// to postgres.user). Defaults cover everything but the Postgres target.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The logger config validates itself after defaulting in logger.New;
	// only the blocks with no later validation point are checked here.
	vd := validator.New()
	if err := vd.Struct(&config.Postgres); err != nil {
		return nil, fmt.Errorf("postgres config validation error: %w", err)
	}
	if err := vd.Struct(&config.Stream); err != nil {
		return nil, fmt.Errorf("stream config validation error: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "user-stream-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")

	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 5)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 60)

	v.SetDefault("stream.default_batch_size", 50)
	v.SetDefault("stream.filter_age", 25)
	v.SetDefault("stream.older_than_age", 40)
	v.SetDefault("stream.cache.enabled", false)
	v.SetDefault("stream.cache.max_entries", 1024)
	v.SetDefault("stream.cache.ttl_seconds", 30)

	// Viper needs to see the keys to let env vars override them even
	// when they are absent from the YAML file.
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "")
}
