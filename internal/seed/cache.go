package seed

import (
	"context"
	"sync"

	"github.com/roach88/wordseed/internal/model"
)

// Cache stores derived seeds by cache key.
//
// PutIfAbsent must keep the first value written for a key and return the
// stored value, so CreatedAt stays fixed across racing writers.
type Cache interface {
	Get(ctx context.Context, key string) (model.DailySeed, bool, error)
	PutIfAbsent(ctx context.Context, key string, s model.DailySeed) (model.DailySeed, error)
}

// MemoryCache is a process-local Cache.
//
// Thread-safety: MemoryCache is safe for concurrent use.
type MemoryCache struct {
	entries sync.Map
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get returns the seed stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) (model.DailySeed, bool, error) {
	v, ok := c.entries.Load(key)
	if !ok {
		return model.DailySeed{}, false, nil
	}
	return v.(model.DailySeed), true, nil
}

// PutIfAbsent stores s unless key is already present.
func (c *MemoryCache) PutIfAbsent(_ context.Context, key string, s model.DailySeed) (model.DailySeed, error) {
	actual, _ := c.entries.LoadOrStore(key, s)
	return actual.(model.DailySeed), nil
}

// Len returns the number of cached seeds.
func (c *MemoryCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
