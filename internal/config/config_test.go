package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.Fetch.Timeout != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", cfg.Fetch.Timeout, DefaultTimeout)
	}
	if cfg.Fetch.MaxRedirects != DefaultMaxRedirects {
		t.Fatalf("max redirects = %d, want %d", cfg.Fetch.MaxRedirects, DefaultMaxRedirects)
	}
	if cfg.Runtime.Concurrency != DefaultConcurrency {
		t.Fatalf("concurrency = %d, want %d", cfg.Runtime.Concurrency, DefaultConcurrency)
	}
	if cfg.Runtime.FailThreshold != DefaultFailThreshold {
		t.Fatalf("fail threshold = %d, want %d", cfg.Runtime.FailThreshold, DefaultFailThreshold)
	}
	if cfg.Output.ConsoleFormat != ConsoleFormatText {
		t.Fatalf("console format = %q, want %q", cfg.Output.ConsoleFormat, ConsoleFormatText)
	}
	if cfg.Signals.GreencheckURL != DefaultGreencheckURL {
		t.Fatalf("greencheck url = %q", cfg.Signals.GreencheckURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) { c.Target.URL = "https://example.com" },
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "bad url",
			mutate: func(c *Config) {
				c.Target.URL = "not a url"
			},
			wantErr: true,
		},
		{
			name: "ndjson console format",
			mutate: func(c *Config) {
				c.Target.URL = "https://example.com"
				c.Output.ConsoleFormat = ConsoleFormatNDJSON
			},
		},
		{
			name: "bad console format",
			mutate: func(c *Config) {
				c.Target.URL = "https://example.com"
				c.Output.ConsoleFormat = "yaml"
			},
			wantErr: true,
		},
		{
			name: "bad category",
			mutate: func(c *Config) {
				c.Target.URL = "https://example.com"
				c.Rules.Categories = []string{"velocity"}
			},
			wantErr: true,
		},
		{
			name: "zero concurrency",
			mutate: func(c *Config) {
				c.Target.URL = "https://example.com"
				c.Runtime.Concurrency = 0
			},
			wantErr: true,
		},
		{
			name: "threshold above 100",
			mutate: func(c *Config) {
				c.Target.URL = "https://example.com"
				c.Runtime.FailThreshold = 101
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := New()
	cfg.Output.ConsoleFormat = " TEXT "
	cfg.Rules.Categories = []string{"Performance", " SECURITY"}
	cfg.Output.Out = "results.ndjson"
	cfg.Normalize()

	if cfg.Output.ConsoleFormat != ConsoleFormatText {
		t.Fatalf("console format = %q", cfg.Output.ConsoleFormat)
	}
	if cfg.Rules.Categories[0] != "performance" || cfg.Rules.Categories[1] != "security" {
		t.Fatalf("categories = %v", cfg.Rules.Categories)
	}
	if cfg.Output.OutFormat != OutFormatNDJSON {
		t.Fatalf("out format = %q, want ndjson", cfg.Output.OutFormat)
	}
}

func TestInferOutFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.json", OutFormatJSON},
		{"out.ndjson", OutFormatNDJSON},
		{"out.jsonl", OutFormatNDJSON},
		{"out.txt", OutFormatJSON},
	}
	for _, tc := range tests {
		if got := inferOutFormat(tc.path); got != tc.want {
			t.Errorf("inferOutFormat(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitemedic.yaml")
	body := []byte(`
target:
  url: https://example.com
fetch:
  timeout: 10s
  ignore_robots: true
runtime:
  fail_threshold: 75
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := New()
	if err := Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target.URL != "https://example.com" {
		t.Fatalf("url = %q", cfg.Target.URL)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.Fetch.Timeout)
	}
	if !cfg.Fetch.IgnoreRobots {
		t.Fatal("ignore_robots not applied")
	}
	if cfg.Runtime.FailThreshold != 75 {
		t.Fatalf("fail threshold = %d", cfg.Runtime.FailThreshold)
	}
	// defaults untouched by the file survive
	if cfg.Runtime.Concurrency != DefaultConcurrency {
		t.Fatalf("concurrency = %d", cfg.Runtime.Concurrency)
	}

	if err := Load(filepath.Join(dir, "missing.yaml"), cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRuleIDs(t *testing.T) {
	cfg := New()
	cfg.Rules.Selector = "title-exists, page-weight ,,compression-enabled"
	got := cfg.RuleIDs()
	want := []string{"title-exists", "page-weight", "compression-enabled"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
