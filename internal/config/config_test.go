package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("QUOTEVAULT_DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when QUOTEVAULT_DATABASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUOTEVAULT_DATABASE_URL", "postgres://localhost/quotevault?sslmode=disable")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", c.HTTPAddr, ":8080")
	}
	if c.NATSURL != "" {
		t.Errorf("NATSURL = %q, want empty", c.NATSURL)
	}
	if c.ArchiveInterval != 15*time.Minute {
		t.Errorf("ArchiveInterval = %v, want 15m", c.ArchiveInterval)
	}
	if c.ArchiveS3Region != "us-east-1" {
		t.Errorf("ArchiveS3Region = %q, want us-east-1", c.ArchiveS3Region)
	}
	if c.ArchiveS3Key != "quotevault/history.jsonl" {
		t.Errorf("ArchiveS3Key = %q", c.ArchiveS3Key)
	}
	if c.ArchiveGitBranch != "main" {
		t.Errorf("ArchiveGitBranch = %q, want main", c.ArchiveGitBranch)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUOTEVAULT_DATABASE_URL", "postgres://db/qv")
	t.Setenv("QUOTEVAULT_HTTP_ADDR", ":9090")
	t.Setenv("QUOTEVAULT_NATS_URL", "nats://localhost:4222")
	t.Setenv("QUOTEVAULT_AUTH_TOKEN", "secret")
	t.Setenv("QUOTEVAULT_ARCHIVE_INTERVAL", "1h")
	t.Setenv("QUOTEVAULT_ARCHIVE_S3_BUCKET", "qv-archive")
	t.Setenv("QUOTEVAULT_ARCHIVE_GIT_REPO", "/srv/archive")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.NATSURL != "nats://localhost:4222" {
		t.Errorf("NATSURL = %q", c.NATSURL)
	}
	if c.AuthToken != "secret" {
		t.Errorf("AuthToken = %q", c.AuthToken)
	}
	if c.ArchiveInterval != time.Hour {
		t.Errorf("ArchiveInterval = %v", c.ArchiveInterval)
	}
	if c.ArchiveS3Bucket != "qv-archive" {
		t.Errorf("ArchiveS3Bucket = %q", c.ArchiveS3Bucket)
	}
	if c.ArchiveGitRepo != "/srv/archive" {
		t.Errorf("ArchiveGitRepo = %q", c.ArchiveGitRepo)
	}
}

func TestLoadBadInterval(t *testing.T) {
	t.Setenv("QUOTEVAULT_DATABASE_URL", "postgres://db/qv")
	t.Setenv("QUOTEVAULT_ARCHIVE_INTERVAL", "often")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable interval")
	}
}
