package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/wordseed/internal/lexicon"
	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/sampler"
	"github.com/roach88/wordseed/internal/seed"
	"github.com/roach88/wordseed/internal/stream"
)

// Engine answers daily seed and word set requests.
//
// Thread-safety: Engine is immutable after construction and safe for
// concurrent use.
type Engine struct {
	catalog *lexicon.Catalog
	seeds   *seed.Generator
	sampler *sampler.Sampler
	logger  *slog.Logger
}

// Selection is one user's word set with the seed it was drawn under.
type Selection struct {
	Seed  model.DailySeed     `json:"seed"`
	Words []sampler.Candidate `json:"words"`
}

// WordList returns the selected words in selection order.
func (s Selection) WordList() []string {
	out := make([]string, len(s.Words))
	for i, c := range s.Words {
		out[i] = c.Word
	}
	return out
}

type options struct {
	logger   *slog.Logger
	cache    seed.Cache
	cacheSet bool
	clock    seed.Clock
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger for warnings and internal errors.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCache sets the seed cache. Nil disables caching.
// The default is a process-local seed.MemoryCache.
func WithCache(c seed.Cache) Option {
	return func(o *options) {
		o.cache = c
		o.cacheSet = true
	}
}

// WithClock sets the clock that stamps DailySeed.CreatedAt.
func WithClock(c seed.Clock) Option {
	return func(o *options) { o.clock = c }
}

// New creates an Engine over catalog.
//
// The secret is validated here, once; a missing or malformed secret returns a
// model.KindConfiguration error and no Engine.
func New(catalog *lexicon.Catalog, secretHex string, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, model.NewConfigurationError("engine.New", "catalog is required", nil)
	}

	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	seedOpts := []seed.Option{seed.WithLogger(o.logger)}
	if o.cacheSet {
		seedOpts = append(seedOpts, seed.WithCache(o.cache))
	}
	if o.clock != nil {
		seedOpts = append(seedOpts, seed.WithClock(o.clock))
	}

	gen, err := seed.NewGenerator(secretHex, catalog, seedOpts...)
	if err != nil {
		return nil, err
	}

	for _, w := range catalog.Warnings() {
		o.logger.Warn("catalog warning", "code", w.Code, "field", w.Field, "message", w.Message)
	}

	return &Engine{
		catalog: catalog,
		seeds:   gen,
		sampler: sampler.New(o.logger),
		logger:  o.logger,
	}, nil
}

// Catalog returns the catalog the engine serves.
func (e *Engine) Catalog() *lexicon.Catalog {
	return e.catalog
}

// CacheKey returns the seed cache key for date.
func (e *Engine) CacheKey(date string) string {
	return e.seeds.CacheKey(date)
}

// DeriveDailySeed returns the seed and theme for date.
func (e *Engine) DeriveDailySeed(ctx context.Context, date string) (model.DailySeed, error) {
	s, err := e.seeds.DailySeed(ctx, date)
	if err != nil {
		e.logInternal("DeriveDailySeed", err, "date", date)
		return model.DailySeed{}, err
	}
	return s, nil
}

// Seeds returns the daily seeds for every date from first through last.
func (e *Engine) Seeds(ctx context.Context, first, last string) ([]model.DailySeed, error) {
	dates, err := seed.DateRange(first, last)
	if err != nil {
		return nil, err
	}

	out := make([]model.DailySeed, 0, len(dates))
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("derive seeds: %w", err)
		}
		s, err := e.DeriveDailySeed(ctx, date)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SampleWords returns the user's word set for date.
//
// The result has min(count, Capacity(date)) words, no repeated word and no
// repeated cluster, all from the date's theme.
func (e *Engine) SampleWords(ctx context.Context, userID, date string, count int) ([]string, error) {
	sel, err := e.Select(ctx, userID, date, count)
	if err != nil {
		return nil, err
	}
	return sel.WordList(), nil
}

// Select is SampleWords returning the seed and each word's classification.
func (e *Engine) Select(ctx context.Context, userID, date string, count int) (Selection, error) {
	if userID == "" {
		return Selection{}, model.NewValidationError("engine.SampleWords", "user id must not be empty")
	}
	if _, err := seed.ParseDate(date); err != nil {
		return Selection{}, err
	}
	if err := sampler.ValidateCount(count); err != nil {
		return Selection{}, err
	}

	ds, err := e.DeriveDailySeed(ctx, date)
	if err != nil {
		return Selection{}, err
	}

	theme, ok := e.catalog.Theme(ds.Theme)
	if !ok {
		err := model.NewInternalError("engine.SampleWords", fmt.Sprintf("seed theme %q is not in the catalog", ds.Theme), nil)
		e.logInternal("SampleWords", err, "date", date, "user", model.HashUserID(userID), "count", count)
		return Selection{}, err
	}

	src, err := stream.Open(ds, userID)
	if err != nil {
		return Selection{}, err
	}

	words, err := e.sampler.SampleCandidates(theme, e.catalog.Lexicon(), src, count)
	if err != nil {
		e.logInternal("SampleWords", err, "date", date, "theme", ds.Theme, "user", model.HashUserID(userID), "count", count)
		return Selection{}, err
	}

	return Selection{Seed: ds, Words: words}, nil
}

// Capacity returns the most words any user can receive on date: the number
// of distinct clusters in the date's theme.
func (e *Engine) Capacity(ctx context.Context, date string) (int, error) {
	ds, err := e.DeriveDailySeed(ctx, date)
	if err != nil {
		return 0, err
	}
	theme, ok := e.catalog.Theme(ds.Theme)
	if !ok {
		err := model.NewInternalError("engine.Capacity", fmt.Sprintf("seed theme %q is not in the catalog", ds.Theme), nil)
		e.logInternal("Capacity", err, "date", date)
		return 0, err
	}
	return e.sampler.Capacity(theme, e.catalog.Lexicon()), nil
}

// logInternal records InternalErrors. Client errors are the caller's to report.
func (e *Engine) logInternal(op string, err error, attrs ...any) {
	if !model.IsInternal(err) {
		return
	}
	args := append([]any{"op", op, "error", err}, attrs...)
	e.logger.Error("internal error", args...)
}
