package cfg

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	oldVersion := Version
	Version = ""
	defer func() { Version = oldVersion }()

	if GetVersion() != "unknown" {
		t.Errorf("Expected 'unknown' for empty version, got '%s'", GetVersion())
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.ConfigFile != "config.yaml" {
		t.Errorf("Expected config file 'config.yaml', got '%s'", cfg.ConfigFile)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("Expected output dir 'public', got '%s'", cfg.OutputDir)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("Expected user agent '%s', got '%s'", DefaultUserAgent, cfg.UserAgent)
	}
	if cfg.FetchTimeout != 60*time.Second {
		t.Errorf("Expected fetch timeout 60s, got %v", cfg.FetchTimeout)
	}
	if filepath.Base(cfg.LockFile) != "rss-rebuilder.lock" {
		t.Errorf("Expected default lock file name, got '%s'", cfg.LockFile)
	}
	if cfg.DryRun {
		t.Error("Expected dry run to be disabled by default")
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parse([]string{
		"--config", "show.toml",
		"--output-dir", "out",
		"--user-agent", "Test Agent",
		"--timeout", "5",
		"--lock-file", "/tmp/test.lock",
		"--dry-run",
		"--debug",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.ConfigFile != "show.toml" {
		t.Errorf("Expected config file 'show.toml', got '%s'", cfg.ConfigFile)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("Expected output dir 'out', got '%s'", cfg.OutputDir)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("Expected fetch timeout 5s, got %v", cfg.FetchTimeout)
	}
	if cfg.LockFile != "/tmp/test.lock" {
		t.Errorf("Expected lock file '/tmp/test.lock', got '%s'", cfg.LockFile)
	}
	if !cfg.DryRun {
		t.Error("Expected dry run to be enabled")
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "site")
	t.Setenv("FETCH_TIMEOUT", "15")

	cfg, err := parse([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.OutputDir != "site" {
		t.Errorf("Expected output dir 'site', got '%s'", cfg.OutputDir)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("Expected fetch timeout 15s, got %v", cfg.FetchTimeout)
	}
}

func TestParseInvalidTimeout(t *testing.T) {
	_, err := parse([]string{"--timeout", "0"})
	if err == nil {
		t.Fatal("Expected error for zero timeout")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Expected timeout error, got: %v", err)
	}
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := parse([]string{"--no-such-flag"})
	if err == nil {
		t.Error("Expected error for unknown flag")
	}
}
