package embedding

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

// ModelCache memoizes Embed calls across a rebuild: many notes share
// boilerplate substrings (enriched-body prefixes, repeated titles in
// descriptions) and embedding is the most expensive step per note.
// ristretto gives bounded, concurrent-safe caching; singleflight collapses
// duplicate concurrent lookups for the same text onto one underlying call.
type ModelCache struct {
	inner Embedder
	cache *ristretto.Cache
	group singleflight.Group
}

// NewModelCache wraps an embedder with a bounded LRU-ish cache.
func NewModelCache(inner Embedder, maxEntries int64) (*ModelCache, error) {
	if maxEntries <= 0 {
		maxEntries = 10_000
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding: new model cache: %w", err)
	}
	return &ModelCache{inner: inner, cache: cache}, nil
}

func (c *ModelCache) Dim() int     { return c.inner.Dim() }
func (c *ModelCache) Name() string { return c.inner.Name() }

func (c *ModelCache) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		return v.([]float32), nil
	}
	v, err, _ := c.group.Do(text, func() (any, error) {
		return c.inner.Embed(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	vec := v.([]float32)
	c.cache.Set(text, vec, 1)
	return vec, nil
}

var _ Embedder = (*ModelCache)(nil)
