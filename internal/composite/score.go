package composite

import (
	"context"
	"math"
	"sort"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/embedding"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/intent"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// DefaultBins is the piecewise-linear encoding bin count used when Score is
// not given an explicit bins value (engine.piecewise_bins, §6).
const DefaultBins = 10

// DaysRecencyHalfLife matches spec §4.5's `exp(-days_since_index/30)`.
const DaysRecencyHalfLife = 30.0

// NoteFacts bundles the per-note signals the composite scorer needs beyond
// the embedding vectors themselves.
type NoteFacts struct {
	Title          string
	Vectors        embedding.Vectors
	DaysSinceIndex float64
	Vitality       float64
	Pagerank       float64
	MaxPagerank    float64
}

// Spaces carries the per-space similarity for one candidate, kept on the
// result for observability.
type Spaces struct {
	Text       float64
	Temporal   float64
	Vitality   float64
	Importance float64
	Type       float64
	Community  float64
}

// Candidate is one scored note.
type Candidate struct {
	Title  string
	Score  float64
	Spaces Spaces
}

// ANNThreshold is the corpus size above which Score consults an ANNIndex
// prefilter instead of scoring every note directly (§4.5 design note).
const ANNThreshold = 2000

// Score runs the composite scorer for one query across a set of notes,
// embedding the query once and returning the top-k candidates sorted
// descending. When ann is non-nil and len(notes) exceeds ANNThreshold, the
// candidate set is prefiltered to ann's nearest neighbors on the body
// space before full six-space scoring; below the threshold every note is
// scored directly so small vaults never pay ANN-index overhead. bins sets
// the piecewise-linear encoding resolution (engine.piecewise_bins, §6);
// DefaultBins is used when bins is not positive.
func Score(ctx context.Context, e embedding.Embedder, query string, cls intent.Classification, notes []NoteFacts, ann embedding.ANNIndex, k int, bins int) ([]Candidate, error) {
	if bins <= 0 {
		bins = DefaultBins
	}
	qvec, err := e.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	pool := notes
	if ann != nil && len(notes) > ANNThreshold {
		hits, err := ann.Query(ctx, qvec, k*10)
		if err == nil && len(hits) > 0 {
			keep := make(map[string]bool, len(hits))
			for _, h := range hits {
				keep[h.Title] = true
			}
			filtered := make([]NoteFacts, 0, len(hits))
			for _, n := range notes {
				if keep[n.Title] {
					filtered = append(filtered, n)
				}
			}
			pool = filtered
		}
	}

	sw := intent.SpaceWeightsFor(cls.Intent)
	split := intent.SplitWeightsFor(cls.Intent)
	typeTarget := buildTypeTarget(intent.TypeTarget(cls.Intent))
	importanceTarget := intent.ImportanceTarget(cls.Intent)

	recentEncoded := Encode(1.0, bins)
	vitalityTargetEncoded := Encode(1.0, bins)
	importanceTargetEncoded := Encode(importanceTarget, bins)

	out := make([]Candidate, 0, len(pool))
	for _, n := range pool {
		spaces := Spaces{
			Text:       textSpace(qvec, n.Vectors, split),
			Type:       embedding.Cosine(typeTarget, n.Vectors.Type),
			Community:  communitySpace(n.Vectors.Community),
			Temporal:   cosine64(Encode(recency(n.DaysSinceIndex), bins), recentEncoded),
			Vitality:   cosine64(Encode(clamp01(n.Vitality), bins), vitalityTargetEncoded),
			Importance: cosine64(Encode(normalizedPagerank(n.Pagerank, n.MaxPagerank), bins), importanceTargetEncoded),
		}
		score := sw.Text*spaces.Text + sw.Temporal*spaces.Temporal + sw.Vitality*spaces.Vitality +
			sw.Importance*spaces.Importance + sw.Type*spaces.Type + sw.Community*spaces.Community
		out = append(out, Candidate{Title: n.Title, Score: score, Spaces: spaces})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func textSpace(q []float32, v embedding.Vectors, w intent.SplitWeights) float64 {
	return w.Title*embedding.Cosine(q, v.Title) + w.Description*embedding.Cosine(q, v.Desc) + w.Body*embedding.Cosine(q, v.Body)
}

// communitySpace is the documented baseline: 0.5 if the note carries a
// non-zero community vector, else 0. A query-side community detection pass
// is left as a design option (§4.5); this baseline alone still produces
// the spec's worked ordering.
func communitySpace(v []float32) float64 {
	for _, x := range v {
		if x != 0 {
			return 0.5
		}
	}
	return 0
}

func recency(daysSinceIndex float64) float64 {
	if daysSinceIndex < 0 {
		daysSinceIndex = 0
	}
	return math.Exp(-daysSinceIndex / DaysRecencyHalfLife)
}

func normalizedPagerank(pagerank, maxPagerank float64) float64 {
	if maxPagerank <= 0 {
		return 0
	}
	v := pagerank / maxPagerank
	return clamp01(v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func buildTypeTarget(weights map[string]float64) []float32 {
	v := make([]float32, len(models.AllTypes))
	for i, t := range models.AllTypes {
		if w, ok := weights[string(t)]; ok {
			v[i] = float32(w)
		}
	}
	return v
}
