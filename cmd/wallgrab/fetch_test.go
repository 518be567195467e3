package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wallgrab/wallgrab/internal/config"
)

// TestNewFetchCmd tests the fetch command creation.
func TestNewFetchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewFetchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "fetch [period...]" {
			t.Errorf("expected use 'fetch [period...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	tests := []struct {
		flag      string
		shorthand string
	}{
		{flag: "concurrency", shorthand: "n"},
		{flag: "retries", shorthand: "r"},
		{flag: "retry-wait", shorthand: ""},
		{flag: "dir", shorthand: "d"},
		{flag: "timeout", shorthand: "t"},
		{flag: "wait-timeout", shorthand: ""},
		{flag: "connect-timeout", shorthand: ""},
		{flag: "read-timeout", shorthand: ""},
		{flag: "headless", shorthand: ""},
		{flag: "dump-html", shorthand: ""},
		{flag: "config", shorthand: "c"},
		{flag: "json", shorthand: "j"},
		{flag: "markdown", shorthand: "m"},
		{flag: "output", shorthand: "o"},
	}

	for _, tt := range tests {
		t.Run("has "+tt.flag+" flag", func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.flag)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
		})
	}
}

// TestBuildConfig tests flag-to-config mapping.
func TestBuildConfig(t *testing.T) {
	t.Run("defaults with no flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewFetchCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Periods) != 1 || cfg.Periods[0] != config.DefaultPeriod {
			t.Errorf("Periods = %v, want [%s]", cfg.Periods, config.DefaultPeriod)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, config.DefaultConcurrency)
		}
		if cfg.MaxRetries != config.DefaultMaxRetries {
			t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, config.DefaultMaxRetries)
		}
		if cfg.OutputDir != config.DefaultOutputDir {
			t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, config.DefaultOutputDir)
		}
		if !cfg.Headless {
			t.Error("Headless = false, want true by default")
		}
	})

	t.Run("positional arguments become periods", func(t *testing.T) {
		t.Parallel()

		cmd := NewFetchCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"202409", "202410"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Periods) != 2 || cfg.Periods[0] != "202409" || cfg.Periods[1] != "202410" {
			t.Errorf("Periods = %v, want [202409 202410]", cfg.Periods)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewFetchCmd()
		args := []string{
			"--concurrency", "4",
			"--retries", "5",
			"--retry-wait", "5s",
			"--dir", "pics",
			"--headless=false",
			"--dump-html",
			"--json",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Concurrency != 4 {
			t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
		}
		if cfg.MaxRetries != 5 {
			t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
		}
		if cfg.RetryWait != 5*time.Second {
			t.Errorf("RetryWait = %v, want 5s", cfg.RetryWait)
		}
		if cfg.OutputDir != "pics" {
			t.Errorf("OutputDir = %q, want pics", cfg.OutputDir)
		}
		if cfg.Headless {
			t.Error("Headless = true, want false")
		}
		if !cfg.DumpHTML {
			t.Error("DumpHTML = false, want true")
		}
		if !cfg.JSONReport {
			t.Error("JSONReport = false, want true")
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewFetchCmd()
		if err := cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("expected an error for missing explicit config file")
		}
	})

	t.Run("explicit config file is loaded", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "wallgrab.yaml")
		content := "cookie: \"session=abc\"\nheaders:\n  Accept-Language: en-US\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cmd := NewFetchCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Site.Cookie != "session=abc" {
			t.Errorf("Site.Cookie = %q, want session=abc", cfg.Site.Cookie)
		}
		if cfg.Site.Headers["Accept-Language"] != "en-US" {
			t.Errorf("Site.Headers = %v, want Accept-Language", cfg.Site.Headers)
		}
	})

	t.Run("invalid period fails validation", func(t *testing.T) {
		t.Parallel()

		cmd := NewFetchCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"not-a-period"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.Validate(); !errors.Is(err, config.ErrInvalidPeriod) {
			t.Errorf("Validate() = %v, want ErrInvalidPeriod", err)
		}
	})

	t.Run("conflicting report formats fail validation", func(t *testing.T) {
		t.Parallel()

		cmd := NewFetchCmd()
		if err := cmd.ParseFlags([]string{"--json", "--markdown"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.Validate(); !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("Validate() = %v, want ErrConflictingReportFormats", err)
		}
	})
}
