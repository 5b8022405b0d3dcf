package fusion

import "math/rand"

// DefaultBudget is the fraction of the trimmed top-K list replaced by
// exploration picks.
const DefaultBudget = 0.10

// Served is one entry of the final served list: either a ranked result or
// an injected exploration pick (Score 0, Explored true).
type Served struct {
	Title    string
	Score    float64
	Explored bool
}

// Inject replaces the bottom floor(K*budget) positions of a trimmed top-K
// list (at least one position when budget > 0) with uniformly random
// titles drawn from the corpus that are not already present, Fisher-Yates
// shuffled. If fewer eligible titles exist than the exploration budget,
// the shortfall is backfilled from the tail of the original ranked list
// instead of serving a shorter-than-requested result.
func Inject(ranked []Fused, corpus []string, budget float64, rng *rand.Rand) []Served {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	k := len(ranked)
	out := make([]Served, k)
	for i, f := range ranked {
		out[i] = Served{Title: f.Title, Score: f.Score}
	}
	if budget <= 0 || k == 0 {
		return out
	}

	slots := int(float64(k) * budget)
	if slots < 1 {
		slots = 1
	}
	if slots > k {
		slots = k
	}

	present := make(map[string]bool, k)
	for _, f := range ranked {
		present[f.Title] = true
	}

	var eligible []string
	for _, title := range corpus {
		if !present[title] {
			eligible = append(eligible, title)
		}
	}
	fisherYatesShuffle(eligible, rng)

	backfillStart := k - slots
	for i := 0; i < slots; i++ {
		pos := backfillStart + i
		if i < len(eligible) {
			out[pos] = Served{Title: eligible[i], Score: 0, Explored: true}
		}
		// else: insufficient eligible titles to fill this slot, leave the
		// original ranked entry in place (tail backfill).
	}
	return out
}

func fisherYatesShuffle(s []string, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
