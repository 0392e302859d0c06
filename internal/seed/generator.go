package seed

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/wordseed/internal/model"
)

// cacheNamespaceLabel is the HMAC message for the secret-derived cache prefix.
// A rotated secret therefore never reads seeds cached under the old one.
const cacheNamespaceLabel = "wordseed/cache-namespace/v1"

// ThemeSource provides the pool facts seed derivation depends on.
// *lexicon.Catalog satisfies it.
type ThemeSource interface {
	ThemeKeys() []string
	Version() string
	Fingerprint() string
}

// Generator derives daily seeds.
//
// Thread-safety: Generator is immutable after construction and safe for
// concurrent use. Concurrency safety of caching is delegated to the Cache.
type Generator struct {
	key       []byte
	themeKeys []string
	version   string
	namespace string
	cache     Cache
	clock     Clock
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithCache replaces the default in-memory cache.
// Passing nil disables caching; CreatedAt is then the time of each call.
func WithCache(c Cache) Option {
	return func(g *Generator) { g.cache = c }
}

// WithClock sets the CreatedAt source.
func WithClock(c Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// WithLogger sets the logger used for cache degradation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator validates the secret once and binds it to the pool's theme keys.
// Returns a model.KindConfiguration error for a missing or malformed secret or
// an empty theme list.
func NewGenerator(secretHex string, src ThemeSource, opts ...Option) (*Generator, error) {
	key, err := ParseSecret(secretHex)
	if err != nil {
		return nil, err
	}

	themeKeys := src.ThemeKeys()
	if len(themeKeys) == 0 {
		return nil, model.NewConfigurationError("seed.NewGenerator", "pool has no themes", nil)
	}

	g := &Generator{
		key:       key,
		themeKeys: themeKeys,
		version:   src.Version(),
		cache:     NewMemoryCache(),
		clock:     SystemClock{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}

	fp := src.Fingerprint()
	if len(fp) > 16 {
		fp = fp[:16]
	}
	g.namespace = hex.EncodeToString(g.mac([]byte(cacheNamespaceLabel)))[:16] + ":" + fp

	return g, nil
}

// Derive computes the seed for date without touching the cache.
// CreatedAt is left zero.
func (g *Generator) Derive(date string) (model.DailySeed, error) {
	if _, err := ParseDate(date); err != nil {
		return model.DailySeed{}, err
	}

	digest := g.mac([]byte(date))
	idx := binary.BigEndian.Uint32(digest[:4]) % uint32(len(g.themeKeys))

	return model.DailySeed{
		Date:         date,
		SeedHex:      hex.EncodeToString(digest),
		Theme:        g.themeKeys[idx],
		PoolsVersion: g.version,
	}, nil
}

// DailySeed returns the seed for date, fixing CreatedAt at first computation.
//
// Cache failures degrade to pure derivation with a warning, never to an error.
// A cached entry that disagrees with derivation is ignored.
func (g *Generator) DailySeed(ctx context.Context, date string) (model.DailySeed, error) {
	derived, err := g.Derive(date)
	if err != nil {
		return model.DailySeed{}, err
	}
	if g.cache == nil {
		derived.CreatedAt = g.now()
		return derived, nil
	}

	key := g.CacheKey(date)
	cached, ok, err := g.cache.Get(ctx, key)
	switch {
	case err != nil:
		g.logger.Warn("seed cache read failed; deriving", "date", date, "error", err)
	case ok && cached.SameDerivation(derived):
		return cached, nil
	case ok:
		g.logger.Error("cached seed disagrees with derivation; ignoring entry",
			"date", date,
			"cache_key", key,
			"cached_theme", cached.Theme,
			"derived_theme", derived.Theme,
		)
		derived.CreatedAt = g.now()
		return derived, nil
	}

	derived.CreatedAt = g.now()
	stored, err := g.cache.PutIfAbsent(ctx, key, derived)
	if err != nil {
		g.logger.Warn("seed cache write failed", "date", date, "error", err)
		return derived, nil
	}
	if !stored.SameDerivation(derived) {
		g.logger.Error("cached seed disagrees with derivation; ignoring entry", "date", date, "cache_key", key)
		return derived, nil
	}
	return stored, nil
}

// CacheKey returns the cache key for date.
// Format: <secret tag>:<pool fingerprint prefix>:<date>
func (g *Generator) CacheKey(date string) string {
	return g.namespace + ":" + date
}

// ThemeKeys returns the canonical theme order used for selection.
func (g *Generator) ThemeKeys() []string {
	out := make([]string, len(g.themeKeys))
	copy(out, g.themeKeys)
	return out
}

func (g *Generator) mac(msg []byte) []byte {
	m := hmac.New(sha256.New, g.key)
	m.Write(msg)
	return m.Sum(nil)
}

func (g *Generator) now() time.Time {
	return g.clock.Now().UTC()
}
