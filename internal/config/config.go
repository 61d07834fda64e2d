package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Telegram delivery channel (optional)
	TelegramToken string

	// Job board ingest (optional, disabled when the URL is empty)
	JobBoardURL     string
	JobBoardQuery   string
	JobBoardTimeout time.Duration
	IngestInterval  time.Duration

	// Matching settings
	RefreshInterval time.Duration
	MatchLimit      int
	JobStaleAfter   time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		RefreshInterval: 15 * time.Minute,
		MatchLimit:      20,
		JobStaleAfter:   7 * 24 * time.Hour,
		JobBoardTimeout: 30 * time.Second,
		IngestInterval:  6 * time.Hour,
		LogLevel:        "info",
		RedisDB:         0,
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	cfg.JobBoardURL = os.Getenv("JOB_BOARD_URL")
	cfg.JobBoardQuery = os.Getenv("JOB_BOARD_QUERY")

	if timeout := os.Getenv("JOB_BOARD_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid JOB_BOARD_TIMEOUT: %w", err)
		}
		cfg.JobBoardTimeout = d
	}

	if interval := os.Getenv("INGEST_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid INGEST_INTERVAL: %w", err)
		}
		cfg.IngestInterval = d
	}

	if interval := os.Getenv("REFRESH_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
		}
		cfg.RefreshInterval = d
	}

	if limit := os.Getenv("MATCH_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid MATCH_LIMIT: %w", err)
		}
		cfg.MatchLimit = n
	}

	if staleAfter := os.Getenv("JOB_STALE_AFTER"); staleAfter != "" {
		d, err := time.ParseDuration(staleAfter)
		if err != nil {
			return nil, fmt.Errorf("invalid JOB_STALE_AFTER: %w", err)
		}
		cfg.JobStaleAfter = d
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.RefreshInterval < time.Minute {
		return fmt.Errorf("refresh interval too small: %v", c.RefreshInterval)
	}

	if c.MatchLimit < 1 || c.MatchLimit > 100 {
		return fmt.Errorf("match limit must be between 1 and 100")
	}

	if c.JobStaleAfter < time.Hour {
		return fmt.Errorf("job stale window too small: %v", c.JobStaleAfter)
	}

	if c.JobBoardURL != "" && c.IngestInterval < 10*time.Minute {
		return fmt.Errorf("ingest interval too small: %v", c.IngestInterval)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
