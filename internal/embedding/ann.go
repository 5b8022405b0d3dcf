package embedding

import "context"

// ANNCandidate is one approximate-nearest-neighbor hit: a note title and its
// cosine similarity to the query embedding.
type ANNCandidate struct {
	Title string
	Score float64
}

// ANNIndex prefilters the corpus to a candidate set by vector similarity
// before the composite scorer runs its full six-space evaluation. Composite
// scoring only bothers querying it above a fixed corpus-size threshold
// (composite.ANNThreshold); below that it scores every note directly.
type ANNIndex interface {
	Add(ctx context.Context, title string, vec []float32) error
	Query(ctx context.Context, vec []float32, n int) ([]ANNCandidate, error)
	Len() int
}
