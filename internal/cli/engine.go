package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/wordseed/internal/config"
	"github.com/roach88/wordseed/internal/engine"
	"github.com/roach88/wordseed/internal/lexicon"
	"github.com/roach88/wordseed/internal/rediscache"
	"github.com/roach88/wordseed/internal/seed"
	"github.com/roach88/wordseed/internal/store"
)

// newFormatter builds the formatter for a command's output streams.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger writes engine logs to stderr at the configured level, or debug
// with --verbose.
func newLogger(opts *RootOptions, w io.Writer) (*slog.Logger, error) {
	level, err := opts.Config.Level()
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return config.NewLogger(w, level), nil
}

// openEngine loads the catalog, connects the configured seed cache and builds
// an engine over it. The returned close function releases the cache.
func openEngine(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*engine.Engine, seed.Cache, func(), error) {
	cfg := opts.Config
	logger, err := newLogger(opts, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}

	cat, err := lexicon.LoadFiles(cfg.PoolPath, cfg.LexiconPath, cfg.LexiconOptions())
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("catalog loaded",
		"pool", cfg.PoolPath,
		"lexicon", cfg.LexiconPath,
		"version", cat.Version(),
		"themes", len(cat.ThemeKeys()),
	)

	cache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	eng, err := engine.New(cat, cfg.Secret, engine.WithLogger(logger), engine.WithCache(cache))
	if err != nil {
		closeCache()
		return nil, nil, nil, err
	}
	return eng, cache, closeCache, nil
}

// openCache picks Redis, then SQLite, then process memory.
func openCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (seed.Cache, func(), error) {
	switch {
	case cfg.RedisAddr != "":
		c, err := rediscache.New(ctx, rediscache.Options{Addr: cfg.RedisAddr, TTL: cfg.RedisTTL, DialTimeout: 5 * time.Second})
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("seed cache", "backend", "redis", "addr", cfg.RedisAddr)
		return c, func() { _ = c.Close() }, nil

	case cfg.CachePath != "":
		s, err := store.Open(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("seed cache", "backend", "sqlite", "path", cfg.CachePath)
		return s, func() { _ = s.Close() }, nil

	default:
		return seed.NewMemoryCache(), func() {}, nil
	}
}

// today returns the current UTC date.
func today() string {
	return seed.SystemClock{}.Now().UTC().Format(time.DateOnly)
}
