package embedding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// ChromemIndex is the default ANNIndex, backed by the pure-Go embedded
// vector database chromem-go.
type ChromemIndex struct {
	mu  sync.RWMutex
	col *chromem.Collection
	n   int
}

// NewChromemIndex creates an empty collection for one embedding space
// (title_vec, desc_vec, or body_vec get their own index).
func NewChromemIndex(name string) (*ChromemIndex, error) {
	db := chromem.NewDB()
	col, err := db.CreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("embedding: create chromem collection %q: %w", name, err)
	}
	return &ChromemIndex{col: col}, nil
}

func (c *ChromemIndex) Add(ctx context.Context, title string, vec []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.col.AddDocument(ctx, chromem.Document{ID: title, Embedding: vec}); err != nil {
		return fmt.Errorf("embedding: chromem add %q: %w", title, err)
	}
	c.n++
	return nil
}

func (c *ChromemIndex) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.n
}

// Query retries with a shrinking result count: chromem-go requires
// nResults <= collection size and returns an error rather than a short
// list when asked for more than is stored.
func (c *ChromemIndex) Query(ctx context.Context, vec []float32, n int) ([]ANNCandidate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.n == 0 {
		return nil, nil
	}
	limit := n
	if limit > c.n {
		limit = c.n
	}

	var results []chromem.Result
	for limit >= 1 {
		var err error
		results, err = c.col.QueryEmbedding(ctx, vec, limit, nil, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			limit--
			continue
		}
		return nil, fmt.Errorf("embedding: chromem query: %w", err)
	}

	out := make([]ANNCandidate, 0, len(results))
	for _, r := range results {
		out = append(out, ANNCandidate{Title: r.ID, Score: float64(r.Similarity)})
	}
	return out, nil
}

func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
