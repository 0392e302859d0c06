package seed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/testutil"
	"github.com/roach88/wordseed/internal/testutil/testcatalog"
)

// Known answers for the shipped pool under testcatalog.ZeroSecret.
var knownSeeds = []struct {
	date    string
	seedHex string
	theme   string
}{
	{"2025-10-15", "7ba06ebcb0c0d5921d077c8c61692e7cca1b559f285de7e69ba3f9685afb2eaf", "city-nights"},
	{"2025-10-16", "50c163f89a75e90e02e83076d4e9b00c853e6905a2e1748a4126f31194f51351", "city-nights"},
	{"2025-10-17", "7780c35f1de1575301304fa87fa3ed06af43831acb28c5be06834a9b589efd7f", "summit"},
	{"2024-02-29", "87756c22190caba325e2b28726a2854d57e8d09a1abe2028182a3893187e88bb", "ocean"},
}

type stubThemes struct {
	keys []string
}

func (s stubThemes) ThemeKeys() []string { return s.keys }
func (s stubThemes) Version() string     { return "stub" }
func (s stubThemes) Fingerprint() string { return "0123456789abcdef0123" }

func newShippedGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := NewGenerator(testcatalog.ZeroSecret, testcatalog.ShippedCatalog(t), opts...)
	require.NoError(t, err)
	return g
}

func TestDeriveKnownAnswers(t *testing.T) {
	g := newShippedGenerator(t)

	for _, tt := range knownSeeds {
		t.Run(tt.date, func(t *testing.T) {
			s, err := g.Derive(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.date, s.Date)
			assert.Equal(t, tt.seedHex, s.SeedHex)
			assert.Equal(t, tt.theme, s.Theme)
			assert.Equal(t, "2025.10.1", s.PoolsVersion)
			assert.True(t, s.CreatedAt.IsZero())
		})
	}
}

func TestDeriveIsPure(t *testing.T) {
	g1 := newShippedGenerator(t)
	g2 := newShippedGenerator(t) // simulated restart

	a, err := g1.Derive("2025-10-15")
	require.NoError(t, err)
	b, err := g2.Derive("2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Regexp(t, `^[0-9a-f]{64}$`, a.SeedHex)
}

func TestDeriveDateSensitivity(t *testing.T) {
	g := newShippedGenerator(t)

	a, err := g.Derive("2025-10-15")
	require.NoError(t, err)
	b, err := g.Derive("2025-10-16")
	require.NoError(t, err)
	assert.NotEqual(t, a.SeedHex, b.SeedHex)
}

func TestDeriveSecretSensitivity(t *testing.T) {
	src := stubThemes{keys: []string{"a", "b"}}
	g1, err := NewGenerator("00", src)
	require.NoError(t, err)
	g2, err := NewGenerator("01", src)
	require.NoError(t, err)

	a, _ := g1.Derive("2025-10-15")
	b, _ := g2.Derive("2025-10-15")
	assert.NotEqual(t, a.SeedHex, b.SeedHex)
}

func TestDeriveThemeOrderIndependentOfInputOrder(t *testing.T) {
	// Theme keys arrive canonical from the catalog; the generator must only
	// ever index into that order.
	g, err := NewGenerator(testcatalog.ZeroSecret, stubThemes{keys: []string{"city-nights", "harvest", "ocean", "summit"}})
	require.NoError(t, err)

	s, err := g.Derive("2025-10-17")
	require.NoError(t, err)
	assert.Equal(t, "summit", s.Theme)
	assert.Equal(t, []string{"city-nights", "harvest", "ocean", "summit"}, g.ThemeKeys())
}

func TestDeriveRejectsBadDates(t *testing.T) {
	g := newShippedGenerator(t)
	for _, d := range []string{"2025-13-01", "2025/10/15", "2025-02-30"} {
		_, err := g.Derive(d)
		assert.True(t, model.IsValidation(err), d)
	}
}

func TestNewGeneratorConfigurationErrors(t *testing.T) {
	_, err := NewGenerator("", stubThemes{keys: []string{"a"}})
	assert.True(t, model.IsConfiguration(err))

	_, err = NewGenerator("not-hex", stubThemes{keys: []string{"a"}})
	assert.True(t, model.IsConfiguration(err))

	_, err = NewGenerator("00", stubThemes{})
	assert.True(t, model.IsConfiguration(err))
	assert.Contains(t, err.Error(), "pool has no themes")
}

func TestDailySeedFixesCreatedAt(t *testing.T) {
	clock := testutil.NewStepClock()
	g := newShippedGenerator(t, WithClock(clock))
	ctx := context.Background()

	first, err := g.DailySeed(ctx, "2025-10-15")
	require.NoError(t, err)
	second, err := g.DailySeed(ctx, "2025-10-15")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, testutil.Epoch, first.CreatedAt)
	assert.Equal(t, int64(1), clock.Calls(), "seed must be stamped once")
}

func TestDailySeedWithoutCache(t *testing.T) {
	clock := testutil.NewStepClock()
	g := newShippedGenerator(t, WithClock(clock), WithCache(nil))
	ctx := context.Background()

	first, err := g.DailySeed(ctx, "2025-10-15")
	require.NoError(t, err)
	second, err := g.DailySeed(ctx, "2025-10-15")
	require.NoError(t, err)

	assert.True(t, first.SameDerivation(second))
	assert.NotEqual(t, first.CreatedAt, second.CreatedAt)
}

func TestDailySeedSharedCacheAcrossRestarts(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	g1 := newShippedGenerator(t, WithCache(cache), WithClock(testutil.FixedClock{T: testutil.Epoch}))
	first, err := g1.DailySeed(ctx, "2025-10-15")
	require.NoError(t, err)

	later := testutil.FixedClock{T: testutil.Epoch.Add(24 * time.Hour)}
	g2 := newShippedGenerator(t, WithCache(cache), WithClock(later))
	second, err := g2.DailySeed(ctx, "2025-10-15")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestDailySeedConcurrentFirstRequests(t *testing.T) {
	g := newShippedGenerator(t, WithClock(testutil.NewStepClock()))
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]model.DailySeed, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := g.DailySeed(ctx, "2025-10-15")
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r, "racing writers must converge on the first stored seed")
	}
}

type failingCache struct {
	getErr, putErr error
	stored         map[string]model.DailySeed
}

func (c *failingCache) Get(_ context.Context, key string) (model.DailySeed, bool, error) {
	if c.getErr != nil {
		return model.DailySeed{}, false, c.getErr
	}
	s, ok := c.stored[key]
	return s, ok, nil
}

func (c *failingCache) PutIfAbsent(_ context.Context, key string, s model.DailySeed) (model.DailySeed, error) {
	if c.putErr != nil {
		return model.DailySeed{}, c.putErr
	}
	if existing, ok := c.stored[key]; ok {
		return existing, nil
	}
	c.stored[key] = s
	return s, nil
}

func TestDailySeedCacheFailuresDegrade(t *testing.T) {
	cache := &failingCache{getErr: errors.New("connection refused"), putErr: errors.New("read-only")}
	g := newShippedGenerator(t, WithCache(cache))

	s, err := g.DailySeed(context.Background(), "2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, knownSeeds[0].seedHex, s.SeedHex)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestDailySeedIgnoresCorruptEntry(t *testing.T) {
	cache := &failingCache{stored: map[string]model.DailySeed{}}
	g := newShippedGenerator(t, WithCache(cache))
	cache.stored[g.CacheKey("2025-10-15")] = model.DailySeed{
		Date:    "2025-10-15",
		SeedHex: "tampered",
		Theme:   "ocean",
	}

	s, err := g.DailySeed(context.Background(), "2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, knownSeeds[0].seedHex, s.SeedHex)
	assert.Equal(t, "city-nights", s.Theme)
}

func TestCacheKeyNamespacing(t *testing.T) {
	src := stubThemes{keys: []string{"a"}}
	g1, err := NewGenerator("00", src)
	require.NoError(t, err)
	g2, err := NewGenerator("01", src)
	require.NoError(t, err)

	k1 := g1.CacheKey("2025-10-15")
	assert.Regexp(t, `^[0-9a-f]{16}:0123456789abcdef:2025-10-15$`, k1)
	assert.NotEqual(t, k1, g2.CacheKey("2025-10-15"), "rotating the secret must change the namespace")
}

func TestCacheKeyZeroSecretNamespace(t *testing.T) {
	g := newShippedGenerator(t)
	assert.Regexp(t, `^da1d6f4a4ce0dae0:[0-9a-f]{16}:2025-10-15$`, g.CacheKey("2025-10-15"))
}
