package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bdragon300/ordered-hash/robinhood"
)

func TestParseConfig(t *testing.T) {
	t.Run("empty document; should return defaults", func(t *testing.T) {
		cfg, err := ParseConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("full document; should override defaults", func(t *testing.T) {
		cfg, err := ParseConfig(`
keys = 10
erase_ratio = 0.5
seed = 7
initial_capacity = 13
max_capacity = 100
hasher = "maphash"

[log]
level = "warn"
format = "json"
`)
		require.NoError(t, err)
		assert.Equal(t, Config{
			Keys:            10,
			EraseRatio:      0.5,
			Seed:            7,
			InitialCapacity: 13,
			MaxCapacity:     100,
			Hasher:          hasherMaphash,
			Log:             LogConfig{Level: "warn", Format: "json"},
		}, cfg)
	})

	t.Run("malformed document; should fail", func(t *testing.T) {
		_, err := ParseConfig("keys = ")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"zero keys; should fail", func(c *Config) { c.Keys = 0 }, "keys must be positive"},
		{"erase ratio above one; should fail", func(c *Config) { c.EraseRatio = 1.5 }, "erase_ratio"},
		{"unknown hasher; should fail", func(c *Config) { c.Hasher = "md5" }, "hasher must be"},
		{"unknown log format; should fail", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"unknown log level; should fail", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{
			"initial capacity rounds above max capacity; should fail",
			func(c *Config) { c.InitialCapacity, c.MaxCapacity = 10, 12 },
			"does not fit max_capacity",
		},
		{"initial capacity fits max capacity; should be ok", func(c *Config) { c.InitialCapacity, c.MaxCapacity = 10, 13 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("sample config; should load", func(t *testing.T) {
		cfg, err := LoadConfig("probestat.toml")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("missing file; should fail", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("invalid values in file; should fail", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("keys = -1\n"), 0o644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "keys must be positive")
	})
}

func TestLogConfigBuild(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := LogConfig{Level: "error", Format: format}.Build()
		require.NoError(t, err, format)
		assert.False(t, logger.Core().Enabled(zap.WarnLevel))
	}
}

func TestRun(t *testing.T) {
	t.Run("default hasher; should erase the ratio and keep order", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Keys = 2000
		cfg.EraseRatio = 0.5

		report, err := Run(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 2000, report.Inserted)
		assert.Equal(t, 1000, report.Erased)
		assert.Equal(t, 1000, report.Len)
		assert.LessOrEqual(t, report.Len*4, report.Cap*3)
	})

	t.Run("maphash hasher; should work", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Keys = 500
		cfg.Hasher = hasherMaphash

		report, err := Run(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 500-125, report.Len)
	})

	t.Run("max capacity too small; should fail with capacity exhausted", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Keys = 100
		cfg.MaxCapacity = 47

		report, err := Run(cfg, zap.NewNop())
		assert.ErrorIs(t, err, robinhood.ErrCapacityExhausted)
		assert.Equal(t, 35, report.Inserted) // 3/4 of 47
	})

	t.Run("growth; should be logged", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		cfg := DefaultConfig()
		cfg.Keys = 100
		cfg.InitialCapacity = 5

		_, err := Run(cfg, zap.New(core))
		require.NoError(t, err)
		assert.NotZero(t, logs.FilterMessage("hash map grown").Len())
		assert.Equal(t, 1, logs.FilterMessage("workload finished").Len())
	})
}
