package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wordseed/internal/model"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Secret)
	assert.Equal(t, "data/pools.json", cfg.PoolPath)
	assert.Equal(t, "data/lexicon.json", cfg.LexiconPath)
	assert.Equal(t, "", cfg.CachePath)
	assert.Zero(t, cfg.RedisTTL, "cached seeds never expire by default")
	assert.False(t, cfg.AllowLexiconDrift)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("WORDSEED_SECRET", "beef")
	t.Setenv("WORDSEED_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "beef", cfg.Secret)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFromValues(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"WORDSEED_SECRET":              "abcd",
		"WORDSEED_POOL_PATH":           "/etc/wordseed/pools.yaml",
		"WORDSEED_LEXICON_PATH":        "/etc/wordseed/lexicon.yaml",
		"WORDSEED_CACHE_PATH":          "/var/lib/wordseed/seeds.db",
		"WORDSEED_REDIS_ADDR":          "redis:6379",
		"WORDSEED_REDIS_TTL":           "30m",
		"WORDSEED_ALLOW_LEXICON_DRIFT": "true",
		"WORDSEED_LOG_LEVEL":           "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "abcd", cfg.Secret)
	assert.Equal(t, "/etc/wordseed/pools.yaml", cfg.PoolPath)
	assert.Equal(t, "/etc/wordseed/lexicon.yaml", cfg.LexiconPath)
	assert.Equal(t, "/var/lib/wordseed/seeds.db", cfg.CachePath)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Minute, cfg.RedisTTL)
	assert.True(t, cfg.AllowLexiconDrift)
	assert.True(t, cfg.LexiconOptions().AllowMissingEntries)
}

func TestLoadFromInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad duration": {"WORDSEED_REDIS_TTL": "forever"},
		"bad bool":     {"WORDSEED_ALLOW_LEXICON_DRIFT": "maybe"},
	}
	for name, environ := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(environ)
			require.Error(t, err)
			assert.True(t, model.IsConfiguration(err))
		})
	}
}

func TestLoadReadsProcessEnv(t *testing.T) {
	t.Setenv("WORDSEED_SECRET", "00ff")
	t.Setenv("WORDSEED_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "00ff", cfg.Secret)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Config{LogLevel: tt.in}.Level()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Config{LogLevel: "loud"}.Level()
	require.Error(t, err)
	assert.True(t, model.IsConfiguration(err))
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=v")
}
