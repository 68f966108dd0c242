package restring_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kolkov/restring"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
fallback_timeout: 250ms
cache_size: 64
workers: 4
disable_fallback: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := restring.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.FallbackTimeout != 250*time.Millisecond {
		t.Errorf("FallbackTimeout = %v", cfg.FallbackTimeout)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d", cfg.CacheSize)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if !cfg.DisableFallback {
		t.Error("DisableFallback = false")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := restring.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	// Unset fields stay zero; NewOps applies defaults.
	if cfg.FallbackTimeout != 0 {
		t.Errorf("FallbackTimeout = %v, want 0 before defaults", cfg.FallbackTimeout)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := restring.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig accepted a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fallback_timeout: nonsense\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := restring.LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted an invalid duration")
	}
}
