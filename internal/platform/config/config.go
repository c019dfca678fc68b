// Package config loads validator settings from built-in defaults, an optional
// TOML file and environment variables, in increasing order of precedence.
//
// Environment variables:
//   - PIXCHECK_CONFIG: path to a TOML file
//   - PIXCHECK_ORDERING: destiny ordering policy ("registered", "origin-bound")
//   - PIXCHECK_LOG_LEVEL: debug, info, warn or error
//   - PIXCHECK_METRICS_FILE: write Prometheus metrics here after each run
//   - PIXCHECK_SENTINEL: line that ends the registration phase
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"pixcheck/internal/domain"
)

const (
	EnvConfigPath  = "PIXCHECK_CONFIG"
	EnvOrdering    = "PIXCHECK_ORDERING"
	EnvLogLevel    = "PIXCHECK_LOG_LEVEL"
	EnvMetricsFile = "PIXCHECK_METRICS_FILE"
	EnvSentinel    = "PIXCHECK_SENTINEL"
)

// Validator captures run-level configuration.
type Validator struct {
	Ordering    string `toml:"ordering"`
	LogLevel    string `toml:"log_level"`
	MetricsFile string `toml:"metrics_file"`
	Sentinel    string `toml:"sentinel"`
}

// Default returns the built-in configuration.
func Default() Validator {
	return Validator{
		Ordering: "registered",
		LogLevel: "warn",
		Sentinel: domain.DefaultSentinel,
	}
}

// Load builds the configuration: defaults, then the TOML file named by
// PIXCHECK_CONFIG if set, then environment overrides.
func Load() (Validator, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigPath); path != "" {
		var err error
		if cfg, err = LoadFile(path, cfg); err != nil {
			return Validator{}, err
		}
	}
	cfg = cfg.withEnv()
	if err := cfg.Validate(); err != nil {
		return Validator{}, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over base. Keys absent from the file keep
// their base value; unknown keys are an error.
func LoadFile(path string, base Validator) (Validator, error) {
	cfg := base
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Validator{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Validator{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c Validator) withEnv() Validator {
	if v := os.Getenv(EnvOrdering); v != "" {
		c.Ordering = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		c.MetricsFile = v
	}
	if v := os.Getenv(EnvSentinel); v != "" {
		c.Sentinel = v
	}
	return c
}

// Validate rejects settings no run could use. Ordering and log level names
// are checked by the packages that own them.
func (c Validator) Validate() error {
	if strings.TrimSpace(c.Sentinel) == "" {
		return errors.New("sentinel must not be blank")
	}
	if strings.ContainsAny(c.Sentinel, " \t") {
		return fmt.Errorf("sentinel %q must be a single token", c.Sentinel)
	}
	return nil
}
