package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	LogFormat           string
	CurriculumDir       string
	ProgressBackend     string
	RedisURL            string
	ProgressWorkerCount int
	ProgressQueueSize   int
	SessionIdleTimeout  time.Duration
	Seed                int64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:tradeskill.db"),
		LogLevel:            strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat:           strings.ToLower(envOr("LOG_FORMAT", "text")),
		CurriculumDir:       os.Getenv("CURRICULUM_DIR"),
		ProgressBackend:     strings.ToLower(envOr("PROGRESS_BACKEND", BackendSQLite)),
		RedisURL:            os.Getenv("REDIS_URL"),
		ProgressWorkerCount: envIntOr("PROGRESS_WORKER_COUNT", 2),
		ProgressQueueSize:   envIntOr("PROGRESS_QUEUE_SIZE", 64),
		SessionIdleTimeout:  envDurationOr("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		Seed:                int64(envIntOr("SEED", 0)),
	}
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	switch c.ProgressBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH cannot be empty"))
		}
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when PROGRESS_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("PROGRESS_BACKEND must be %q or %q, got %q", BackendSQLite, BackendRedis, c.ProgressBackend))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.CurriculumDir != "" {
		if info, err := os.Stat(c.CurriculumDir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Errorf("CURRICULUM_DIR %q is not a readable directory", c.CurriculumDir))
		}
	}
	if c.ProgressWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("PROGRESS_WORKER_COUNT must be at least 1, got %d", c.ProgressWorkerCount))
	}
	if c.ProgressQueueSize < 1 {
		errs = append(errs, fmt.Errorf("PROGRESS_QUEUE_SIZE must be at least 1, got %d", c.ProgressQueueSize))
	}
	if c.SessionIdleTimeout < time.Minute {
		errs = append(errs, fmt.Errorf("SESSION_IDLE_TIMEOUT must be at least 1m, got %s", c.SessionIdleTimeout))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
