package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// hashEmbedder is the dependency-free default realization of E: a signed
// feature-hashing bag-of-words projection into a fixed dimension, L2
// normalized. It needs no model file and no cgo, so it is always buildable;
// the onnx-tagged embedder is preferred when a local model is configured.
type hashEmbedder struct {
	dim int
}

// NewHashEmbedder returns the default embedder at dimension d.
func NewHashEmbedder(d int) Embedder {
	if d <= 0 {
		d = 128
	}
	return &hashEmbedder{dim: d}
}

func (h *hashEmbedder) Dim() int      { return h.dim }
func (h *hashEmbedder) Name() string  { return "hash" }
func (h *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float64, h.dim)
	for _, tok := range tokenize(text) {
		idx, sign := hashToken(tok, h.dim)
		v[idx] += sign
	}
	return normalize(v), nil
}

// tokenize lowercases and splits on runs of non-letter/non-digit.
func tokenize(s string) []string {
	var toks []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			toks = append(toks, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return toks
}

// hashToken maps a token to a bucket and a sign bit, the standard
// feature-hashing trick (signed hashing trick of Weinberger et al.) to keep
// collisions unbiased in expectation.
func hashToken(tok string, dim int) (int, float64) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tok))
	sum := h.Sum32()
	idx := int(sum % uint32(dim))
	sign := 1.0
	if sum&0x1 == 1 {
		sign = -1.0
	}
	return idx, sign
}

func normalize(v []float64) []float32 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = float32(x / norm)
	}
	return out
}
