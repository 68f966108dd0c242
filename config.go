package restring

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds configuration options for pattern compilation and columnar
// execution. The zero value is usable; unset fields take defaults.
type Config struct {
	// FallbackTimeout bounds each match call on the backtracking engine.
	// The linear-time engine is bounded by construction and ignores it.
	// Zero takes the default (1s); negative disables the budget.
	FallbackTimeout time.Duration

	// CacheSize caps the number of compiled engines kept in the
	// process-wide cache, with FIFO eviction (default: 256).
	CacheSize int

	// Workers is the number of goroutines used by columnar operations.
	// 1 forces sequential execution (default: runtime.NumCPU()).
	Workers int

	// DisableFallback makes patterns with non-regular constructs
	// (backreferences, lookaround) a compile error instead of routing
	// them to the backtracking engine. For callers that must never run
	// an engine without the linear-time guarantee.
	DisableFallback bool

	// Logger receives a one-time advisory per pattern routed to the
	// backtracking engine. Nil uses slog.Default(); to silence the
	// advisory, pass a logger with a discarding handler.
	Logger *slog.Logger
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.FallbackTimeout == 0 {
		c.FallbackTimeout = time.Second
	}
	if c.FallbackTimeout < 0 {
		c.FallbackTimeout = 0
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 256
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// fileConfig mirrors Config for YAML decoding. Durations are strings in
// time.ParseDuration syntax ("500ms", "2s").
type fileConfig struct {
	FallbackTimeout string `yaml:"fallback_timeout"`
	CacheSize       int    `yaml:"cache_size"`
	Workers         int    `yaml:"workers"`
	DisableFallback bool   `yaml:"disable_fallback"`
}

// LoadConfig reads a YAML configuration file.
// Missing keys keep their defaults.
//
// Example file:
//
//	fallback_timeout: 500ms
//	cache_size: 1024
//	workers: 8
//	disable_fallback: false
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := &Config{
		CacheSize:       fc.CacheSize,
		Workers:         fc.Workers,
		DisableFallback: fc.DisableFallback,
	}
	if fc.FallbackTimeout != "" {
		d, err := time.ParseDuration(fc.FallbackTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid fallback_timeout: %w", err)
		}
		cfg.FallbackTimeout = d
	}
	return cfg, nil
}
