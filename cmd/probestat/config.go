package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/bdragon300/ordered-hash/primes"
)

const (
	hasherXXHash  = "xxhash"
	hasherMaphash = "maphash"
)

// Config describes a workload replayed against a map.
type Config struct {
	Keys            int       `toml:"keys"`
	EraseRatio      float64   `toml:"erase_ratio"` // fraction of inserted keys erased afterwards, [0, 1]
	Seed            uint64    `toml:"seed"`
	InitialCapacity uint32    `toml:"initial_capacity"` // 0 means default
	MaxCapacity     uint32    `toml:"max_capacity"`     // 0 means unlimited
	Hasher          string    `toml:"hasher"`
	Log             LogConfig `toml:"log"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

func DefaultConfig() Config {
	return Config{
		Keys:       100000,
		EraseRatio: 0.25,
		Seed:       1,
		Hasher:     hasherXXHash,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a toml file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ParseConfig is like LoadConfig, but takes the toml document itself.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Keys <= 0 {
		errs = append(errs, fmt.Errorf("keys must be positive, got %d", c.Keys))
	}
	if c.EraseRatio < 0 || c.EraseRatio > 1 {
		errs = append(errs, fmt.Errorf("erase_ratio must be in range [0, 1], got %v", c.EraseRatio))
	}
	if c.MaxCapacity > 0 {
		// Both are rounded to table primes: initial capacity up, max capacity down
		idx, ok := primes.IndexFor(c.InitialCapacity, 0)
		if !ok || idx > primes.IndexBelow(c.MaxCapacity) {
			errs = append(errs, fmt.Errorf("initial_capacity %d does not fit max_capacity %d", c.InitialCapacity, c.MaxCapacity))
		}
	}
	if c.Hasher != hasherXXHash && c.Hasher != hasherMaphash {
		errs = append(errs, fmt.Errorf("hasher must be %q or %q, got %q", hasherXXHash, hasherMaphash, c.Hasher))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log format must be console or json, got %q", c.Log.Format))
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// Build creates a logger writing to stderr.
func (c LogConfig) Build() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.Encoding = c.Format
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
