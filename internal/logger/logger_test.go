package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/maxviazov/user-stream-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "valid production environment",
			config: &logpkg.LoggerConfig{
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
				Env:            "prod",
				Level:          "info",
			},
			expectError: false,
			wantLevel:   zerolog.InfoLevel,
		},
		{
			name: "valid development environment with debug level",
			config: &logpkg.LoggerConfig{
				ServiceName: "test-service",
				Env:         "dev",
				Level:       "debug",
				Format:      "console",
			},
			expectError: false,
			wantLevel:   zerolog.DebugLevel,
		},
		{
			name: "invalid configuration - wrong env",
			config: &logpkg.LoggerConfig{
				ServiceName: "bad-service",
				Env:         "wrong-env", // not allowed by validator
				Level:       "debug",
			},
			expectError: true,
		},
		{
			name: "invalid configuration - wrong level",
			config: &logpkg.LoggerConfig{
				Env:   "prod",
				Level: "loud",
			},
			expectError: true,
		},
		{
			name:        "empty config gets defaults",
			config:      &logpkg.LoggerConfig{},
			expectError: false,
			wantLevel:   zerolog.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := logpkg.New(tt.config)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetDefaults_ServiceIdentity(t *testing.T) {
	cfg := &logpkg.LoggerConfig{Env: "prod"}
	_, err := logpkg.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-stream-service", cfg.ServiceName)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}
