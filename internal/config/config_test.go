package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/tradeskill/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                ":8080",
		DBPath:              "test.db",
		LogLevel:            "INFO",
		LogFormat:           "text",
		ProgressBackend:     config.BackendSQLite,
		ProgressWorkerCount: 2,
		ProgressQueueSize:   64,
		SessionIdleTimeout:  30 * time.Minute,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_Backends(t *testing.T) {
	tests := []struct {
		name          string
		backend       string
		redisURL      string
		expectedError string
	}{
		{
			name:     "redis with url",
			backend:  config.BackendRedis,
			redisURL: "redis://localhost:6379/0",
		},
		{
			name:          "redis without url",
			backend:       config.BackendRedis,
			expectedError: "REDIS_URL",
		},
		{
			name:          "unknown backend",
			backend:       "postgres",
			expectedError: "PROGRESS_BACKEND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ProgressBackend = tt.backend
			cfg.RedisURL = tt.redisURL

			err := cfg.Validate()
			if tt.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_InvalidLogSettings(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "LOUD"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestValidate_MissingCurriculumDir(t *testing.T) {
	cfg := validConfig()
	cfg.CurriculumDir = "/nonexistent/curriculum-dir-12345"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CURRICULUM_DIR")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:                "",
		DBPath:              "",
		LogLevel:            "INVALID",
		LogFormat:           "text",
		ProgressBackend:     config.BackendSQLite,
		ProgressWorkerCount: 0,
		ProgressQueueSize:   0,
		SessionIdleTimeout:  time.Second,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "PROGRESS_WORKER_COUNT")
	assert.Contains(t, errStr, "PROGRESS_QUEUE_SIZE")
	assert.Contains(t, errStr, "SESSION_IDLE_TIMEOUT")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROGRESS_BACKEND", "REDIS")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("PROGRESS_WORKER_COUNT", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, config.BackendRedis, cfg.ProgressBackend)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 2, cfg.ProgressWorkerCount)
}
