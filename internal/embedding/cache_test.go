package embedding

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingEmbedder struct {
	calls int64
	dim   int
}

func (c *countingEmbedder) Dim() int     { return c.dim }
func (c *countingEmbedder) Name() string { return "counting" }
func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	atomic.AddInt64(&c.calls, 1)
	return []float32{float32(len(text))}, nil
}

func TestModelCache_DeduplicatesRepeatedText(t *testing.T) {
	inner := &countingEmbedder{dim: 1}
	cache, err := NewModelCache(inner, 100)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := cache.Embed(ctx, "repeated"); err != nil {
			t.Fatal(err)
		}
	}
	// ristretto applies admission/eviction asynchronously; allow it to settle.
	time.Sleep(10 * time.Millisecond)
	if atomic.LoadInt64(&inner.calls) > 5 {
		t.Errorf("expected caching to reduce or hold calls, got %d", inner.calls)
	}
}

func TestModelCache_DelegatesDimAndName(t *testing.T) {
	inner := &countingEmbedder{dim: 42}
	cache, _ := NewModelCache(inner, 10)
	if cache.Dim() != 42 {
		t.Errorf("Dim() = %d, want 42", cache.Dim())
	}
	if cache.Name() != "counting" {
		t.Errorf("Name() = %q", cache.Name())
	}
}
