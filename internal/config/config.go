// Package config reads WORDSEED_* environment variables and builds the
// process logger.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/roach88/wordseed/internal/lexicon"
	"github.com/roach88/wordseed/internal/model"
)

// Config is the process configuration.
type Config struct {
	// Secret is the hex-encoded HMAC key. Never read from flags.
	Secret string `env:"WORDSEED_SECRET"`

	PoolPath    string `env:"WORDSEED_POOL_PATH"    envDefault:"data/pools.json"`
	LexiconPath string `env:"WORDSEED_LEXICON_PATH" envDefault:"data/lexicon.json"`

	// CachePath enables the SQLite seed cache.
	CachePath string `env:"WORDSEED_CACHE_PATH"`

	// RedisAddr enables the Redis seed cache. It takes precedence over CachePath.
	RedisAddr string `env:"WORDSEED_REDIS_ADDR"`
	// RedisTTL expires cached seeds. Zero keeps them forever. A non-zero TTL
	// must outlive every date callers can still request, or an expired date
	// gets a new CreatedAt.
	RedisTTL time.Duration `env:"WORDSEED_REDIS_TTL" envDefault:"0s"`

	// AllowLexiconDrift downgrades missing lexicon entries to warnings.
	AllowLexiconDrift bool `env:"WORDSEED_ALLOW_LEXICON_DRIFT"`

	LogLevel string `env:"WORDSEED_LOG_LEVEL" envDefault:"info"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses environ. A nil map means the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, model.NewConfigurationError("config.Load", "parse env", err)
	}
	return cfg, nil
}

// LexiconOptions returns the catalog loading options.
func (c Config) LexiconOptions() lexicon.Options {
	return lexicon.Options{AllowMissingEntries: c.AllowLexiconDrift}
}

// Level parses LogLevel (debug, info, warn, error).
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, model.NewConfigurationError("config.Level", fmt.Sprintf("unknown log level %q", c.LogLevel), err)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
