// Package embedding implements the per-note multi-vector representation of
// spec §4.4 and its incremental, content-hash-keyed persistence in an
// embedded relational store.
package embedding

import "context"

// Embedder is the auxiliary text-embedding function E of §4.4: a pure
// (string) -> fixed-dimension float vector. The core treats the concrete
// realization as swappable; two implementations ship here (hashEmbedder,
// the dependency-free default, and the onnx-tagged local-model backend).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dim() int
	Name() string
}
