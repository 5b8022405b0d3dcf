package intent

// SpaceWeights weights the six composite-scoring spaces (§4.5); entries
// within one profile sum to 1.
type SpaceWeights struct {
	Text       float64
	Temporal   float64
	Vitality   float64
	Importance float64
	Type       float64
	Community  float64
}

// SplitWeights weights the three text sub-spaces (§4.5); entries within one
// profile sum to 1.
type SplitWeights struct {
	Title       float64
	Description float64
	Body        float64
}

var spaceWeights = map[Intent]SpaceWeights{
	Episodic:   {Text: .40, Temporal: .25, Vitality: .15, Importance: .05, Type: .05, Community: .10},
	Procedural: {Text: .30, Temporal: .05, Vitality: .10, Importance: .30, Type: .10, Community: .15},
	Semantic:   {Text: .65, Temporal: .05, Vitality: .10, Importance: .10, Type: .05, Community: .05},
	Decision:   {Text: .30, Temporal: .15, Vitality: .10, Importance: .10, Type: .30, Community: .05},
}

var splitWeights = map[Intent]SplitWeights{
	Semantic:   {Title: .50, Description: .30, Body: .20},
	Episodic:   {Title: .20, Description: .20, Body: .60},
	Decision:   {Title: .40, Description: .40, Body: .20},
	Procedural: {Title: .30, Description: .30, Body: .40},
}

// SpaceWeightsFor returns the six-space profile for an intent, defaulting
// to Semantic's profile for an unrecognized value.
func SpaceWeightsFor(i Intent) SpaceWeights {
	if w, ok := spaceWeights[i]; ok {
		return w
	}
	return spaceWeights[Semantic]
}

// SplitWeightsFor returns the title/description/body split for an intent,
// defaulting to Semantic's profile for an unrecognized value.
func SplitWeightsFor(i Intent) SplitWeights {
	if w, ok := splitWeights[i]; ok {
		return w
	}
	return splitWeights[Semantic]
}

// ImportanceTarget is the composite scorer's target value for the
// importance space: 0.8 for procedural/decision queries, 0.5 otherwise.
func ImportanceTarget(i Intent) float64 {
	if i == Procedural || i == Decision {
		return 0.8
	}
	return 0.5
}

// TypeTarget returns the query-implied type-target weights the composite
// scorer's type space compares against each note's type one-hot, per
// §4.5's per-intent rule. Weights need not sum to 1 — only their relative
// magnitude matters, since the comparison is cosine similarity. Semantic's
// "body-heavy bias" (spec §4.5) is resolved here as learning/insight
// outweighing idea, since those types correlate with longer, more
// substantive bodies than a quick idea capture.
func TypeTarget(i Intent) map[string]float64 {
	switch i {
	case Decision:
		return map[string]float64{"decision": 1}
	case Procedural:
		return map[string]float64{"learning": 1, "insight": 1}
	case Episodic:
		return map[string]float64{"idea": 1, "learning": 1, "insight": 1}
	default: // Semantic
		return map[string]float64{"idea": 0.5, "learning": 1, "insight": 1}
	}
}
