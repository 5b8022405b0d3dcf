// Package fusion implements score-weighted RRF merging of per-signal
// ranked lists and the exploration-injection pass of spec §4.7.
package fusion

import "sort"

// SignalHit is one candidate from a single signal's ranked list.
type SignalHit struct {
	Title string
	Score float64
}

// Weights names the default per-signal weights of §4.7.
type Weights struct {
	Composite float64
	Keyword   float64
	Graph     float64
}

// DefaultWeights matches the spec's documented defaults.
func DefaultWeights() Weights {
	return Weights{Composite: 2.0, Keyword: 1.0, Graph: 1.5}
}

// DefaultK is the RRF rank-damping constant.
const DefaultK = 60

// Fused is one merged candidate, carrying its per-signal raw scores for
// debugging.
type Fused struct {
	Title     string
	Score     float64
	PerSignal map[string]float64
}

// Fuse merges composite/keyword/graph ranked lists with score-weighted
// reciprocal rank fusion:
//
//	fused(note) = Σ_s weight[s] · raw_score[s](note) / (k + rank[s](note) + 1)
//
// Notes are merged by title; ties are broken by first-seen insertion
// order across the three lists (composite, then keyword, then graph).
func Fuse(composite, keyword, graph []SignalHit, w Weights, k int) []Fused {
	if k <= 0 {
		k = DefaultK
	}
	index := make(map[string]*Fused)
	var order []string

	add := func(signal string, weight float64, hits []SignalHit) {
		for rank, h := range hits {
			f, ok := index[h.Title]
			if !ok {
				f = &Fused{Title: h.Title, PerSignal: make(map[string]float64)}
				index[h.Title] = f
				order = append(order, h.Title)
			}
			f.PerSignal[signal] = h.Score
			f.Score += weight * h.Score / float64(k+rank+1)
		}
	}

	add("composite", w.Composite, composite)
	add("keyword", w.Keyword, keyword)
	add("graph", w.Graph, graph)

	out := make([]Fused, 0, len(order))
	for _, title := range order {
		out = append(out, *index[title])
	}
	// order already reflects first-seen (composite, then keyword, then
	// graph) insertion; SliceStable preserves that on score ties.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
