package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/seed"
	"github.com/roach88/wordseed/internal/testutil"
	"github.com/roach88/wordseed/internal/testutil/testcatalog"
)

func testSeed(date, theme string, createdAt time.Time) model.DailySeed {
	return model.DailySeed{
		Date:         date,
		SeedHex:      "7ba06ebcb0c0d5921d077c8c61692e7cca1b559f285de7e69ba3f9685afb2eaf",
		Theme:        theme,
		PoolsVersion: "2025.10.1",
		CreatedAt:    createdAt,
	}
}

func TestGet_Miss(t *testing.T) {
	s := createTestStore(t)

	_, ok, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutIfAbsent_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := testSeed("2025-10-15", "city-nights", testutil.Epoch.Add(123456789*time.Nanosecond))

	stored, err := s.PutIfAbsent(ctx, "k:2025-10-15", want)
	require.NoError(t, err)
	assert.Equal(t, want, stored)

	got, ok, err := s.Get(ctx, "k:2025-10-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestPutIfAbsent_FirstWriteWins(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := testSeed("2025-10-15", "city-nights", testutil.Epoch)
	later := testSeed("2025-10-15", "city-nights", testutil.Epoch.Add(time.Hour))

	_, err := s.PutIfAbsent(ctx, "k", first)
	require.NoError(t, err)
	stored, err := s.PutIfAbsent(ctx, "k", later)
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, stored.CreatedAt)
}

func TestPutIfAbsent_ConcurrentWriters(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]model.DailySeed, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stored, err := s.PutIfAbsent(ctx, "k", testSeed("2025-10-15", "city-nights", testutil.Epoch.Add(time.Duration(i)*time.Second)))
			assert.NoError(t, err)
			results[i] = stored
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestPutIfAbsent_LocalTimeStoredAsUTC(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	loc := time.FixedZone("UTC+2", 2*60*60)

	stored, err := s.PutIfAbsent(ctx, "k", testSeed("2025-10-15", "city-nights", testutil.Epoch.In(loc)))
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(testutil.Epoch))
	assert.Equal(t, time.UTC, stored.CreatedAt.Location())
}

func TestListRange(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2025-10-17", "2025-10-15", "2025-10-16", "2025-11-01"} {
		_, err := s.PutIfAbsent(ctx, "ns-a:"+d, testSeed(d, "summit", testutil.Epoch))
		require.NoError(t, err)
	}
	_, err := s.PutIfAbsent(ctx, "ns-b:2025-10-16", testSeed("2025-10-16", "ocean", testutil.Epoch))
	require.NoError(t, err)

	got, err := s.ListRange(ctx, "ns-a:", "2025-10-15", "2025-10-17")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-10-15", got[0].Date)
	assert.Equal(t, "2025-10-16", got[1].Date)
	assert.Equal(t, "2025-10-17", got[2].Date)
	for _, ds := range got {
		assert.Equal(t, "summit", ds.Theme)
	}

	all, err := s.ListRange(ctx, "", "2025-10-16", "2025-10-16")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := s.ListRange(ctx, "ns-c:", "2025-10-15", "2025-10-17")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestStore_CreatedAtSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.db")
	cat := testcatalog.ShippedCatalog(t)
	ctx := context.Background()

	derive := func(clock seed.Clock) model.DailySeed {
		s, err := Open(path)
		require.NoError(t, err)
		defer s.Close()

		gen, err := seed.NewGenerator(testcatalog.ZeroSecret, cat, seed.WithCache(s), seed.WithClock(clock))
		require.NoError(t, err)
		ds, err := gen.DailySeed(ctx, "2025-10-15")
		require.NoError(t, err)
		return ds
	}

	first := derive(testutil.FixedClock{T: testutil.Epoch})
	second := derive(testutil.FixedClock{T: testutil.Epoch.Add(24 * time.Hour)})

	assert.Equal(t, first, second)
	assert.Equal(t, testutil.Epoch, second.CreatedAt)
	assert.Equal(t, "city-nights", second.Theme)
}
