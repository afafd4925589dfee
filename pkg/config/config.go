// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// Config is the dispatch runtime configuration, read from TOML.
type Config struct {
	Service string  `toml:"service"`
	Log     Log     `toml:"log"`
	Metrics Metrics `toml:"metrics"`
}

type Log struct {
	Dir        string `toml:"dir"`
	File       string `toml:"file"`
	Level      string `toml:"level"` // debug | info | warn | error
	Console    bool   `toml:"console"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type Metrics struct {
	Enabled   bool      `toml:"enabled"`
	Namespace string    `toml:"namespace"`
	Buckets   []float64 `toml:"buckets"` // dispatch latency, seconds
}

func Default() Config {
	return Config{
		Service: "dispatch",
		Log: Log{
			Dir:        "log",
			File:       "dispatch.log",
			Level:      "info",
			Console:    true,
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Metrics: Metrics{
			Enabled:   true,
			Namespace: "dispatch",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 5},
		},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var levels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// Validate reports every problem, not just the first.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.Service) == "" {
		err = multierr.Append(err, errors.New("config: service required"))
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		err = multierr.Append(err, fmt.Errorf("config: log.level %q: must be debug, info, warn or error", c.Log.Level))
	}
	if strings.TrimSpace(c.Log.File) == "" {
		err = multierr.Append(err, errors.New("config: log.file required"))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		err = multierr.Append(err, errors.New("config: log rotation values must not be negative"))
	}
	if c.Metrics.Enabled {
		if !sort.Float64sAreSorted(c.Metrics.Buckets) || hasDup(c.Metrics.Buckets) {
			err = multierr.Append(err, fmt.Errorf("config: metrics.buckets must be strictly increasing: %v", c.Metrics.Buckets))
		}
	}
	return err
}

func hasDup(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] == xs[i-1] {
			return true
		}
	}
	return false
}
