package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // QUOTEVAULT_DATABASE_URL (required)
	HTTPAddr    string // QUOTEVAULT_HTTP_ADDR (default ":8080")
	NATSURL     string // QUOTEVAULT_NATS_URL (optional, empty = no audit events)
	AuthToken   string // QUOTEVAULT_AUTH_TOKEN (optional, empty = auth disabled)

	// History archival settings
	ArchiveInterval   time.Duration // QUOTEVAULT_ARCHIVE_INTERVAL (default 15m, 0 = disabled)
	ArchiveS3Bucket   string        // QUOTEVAULT_ARCHIVE_S3_BUCKET (enables S3 when set)
	ArchiveS3Endpoint string        // QUOTEVAULT_ARCHIVE_S3_ENDPOINT (custom endpoint, e.g. MinIO)
	ArchiveS3Region   string        // QUOTEVAULT_ARCHIVE_S3_REGION (default "us-east-1")
	ArchiveS3Key      string        // QUOTEVAULT_ARCHIVE_S3_KEY (default "quotevault/history.jsonl")
	ArchiveGitRepo    string        // QUOTEVAULT_ARCHIVE_GIT_REPO (enables git when set, path to a clone)
	ArchiveGitFile    string        // QUOTEVAULT_ARCHIVE_GIT_FILE (default "history.jsonl")
	ArchiveGitBranch  string        // QUOTEVAULT_ARCHIVE_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:       os.Getenv("QUOTEVAULT_DATABASE_URL"),
		HTTPAddr:          envOrDefault("QUOTEVAULT_HTTP_ADDR", ":8080"),
		NATSURL:           os.Getenv("QUOTEVAULT_NATS_URL"),
		AuthToken:         os.Getenv("QUOTEVAULT_AUTH_TOKEN"),
		ArchiveS3Bucket:   os.Getenv("QUOTEVAULT_ARCHIVE_S3_BUCKET"),
		ArchiveS3Endpoint: os.Getenv("QUOTEVAULT_ARCHIVE_S3_ENDPOINT"),
		ArchiveS3Region:   envOrDefault("QUOTEVAULT_ARCHIVE_S3_REGION", "us-east-1"),
		ArchiveS3Key:      envOrDefault("QUOTEVAULT_ARCHIVE_S3_KEY", "quotevault/history.jsonl"),
		ArchiveGitRepo:    os.Getenv("QUOTEVAULT_ARCHIVE_GIT_REPO"),
		ArchiveGitFile:    envOrDefault("QUOTEVAULT_ARCHIVE_GIT_FILE", "history.jsonl"),
		ArchiveGitBranch:  envOrDefault("QUOTEVAULT_ARCHIVE_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("QUOTEVAULT_DATABASE_URL is required")
	}

	interval := envOrDefault("QUOTEVAULT_ARCHIVE_INTERVAL", "15m")
	d, err := time.ParseDuration(interval)
	if err != nil {
		return nil, fmt.Errorf("parsing QUOTEVAULT_ARCHIVE_INTERVAL: %w", err)
	}
	c.ArchiveInterval = d

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
