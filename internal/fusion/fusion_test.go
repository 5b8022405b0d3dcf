package fusion

import (
	"math/rand"
	"testing"
)

func TestFuse_AppearingInAllSignalsOutranksSingleSignal(t *testing.T) {
	composite := []SignalHit{{Title: "a", Score: 0.9}, {Title: "b", Score: 0.8}}
	keyword := []SignalHit{{Title: "a", Score: 5.0}}
	graph := []SignalHit{{Title: "a", Score: 0.7}}

	fused := Fuse(composite, keyword, graph, DefaultWeights(), DefaultK)
	if len(fused) != 2 {
		t.Fatalf("expected 2 fused candidates, got %d", len(fused))
	}
	if fused[0].Title != "a" {
		t.Errorf("expected 'a' (all three signals) to rank first, got %q", fused[0].Title)
	}
}

func TestFuse_PreservesPerSignalScores(t *testing.T) {
	composite := []SignalHit{{Title: "a", Score: 0.9}}
	fused := Fuse(composite, nil, nil, DefaultWeights(), DefaultK)
	if fused[0].PerSignal["composite"] != 0.9 {
		t.Errorf("expected raw composite score preserved, got %v", fused[0].PerSignal)
	}
}

func TestFuse_EmptyInputsNoCandidates(t *testing.T) {
	fused := Fuse(nil, nil, nil, DefaultWeights(), DefaultK)
	if len(fused) != 0 {
		t.Errorf("expected no candidates, got %d", len(fused))
	}
}

func TestFuse_TiesBrokenByInsertionOrder(t *testing.T) {
	composite := []SignalHit{{Title: "a", Score: 1}, {Title: "b", Score: 1}}
	fused := Fuse(composite, nil, nil, DefaultWeights(), DefaultK)
	if fused[0].Title != "a" || fused[1].Title != "b" {
		t.Errorf("expected tie broken by insertion order, got %+v", fused)
	}
}

func makeRanked(titles ...string) []Fused {
	var out []Fused
	for i, t := range titles {
		out = append(out, Fused{Title: t, Score: float64(len(titles) - i)})
	}
	return out
}

func TestInject_ReplacesBottomBudgetFraction(t *testing.T) {
	ranked := makeRanked("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	corpus := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "x", "y", "z"}
	served := Inject(ranked, corpus, DefaultBudget, rand.New(rand.NewSource(42)))
	if len(served) != 10 {
		t.Fatalf("expected 10 served entries, got %d", len(served))
	}
	var exploredCount int
	for _, s := range served {
		if s.Explored {
			exploredCount++
			if s.Score != 0 {
				t.Errorf("explored entry should have score 0, got %f", s.Score)
			}
		}
	}
	if exploredCount != 1 {
		t.Errorf("expected floor(10*0.10)=1 explored entry, got %d", exploredCount)
	}
}

func TestInject_ZeroBudgetNoChange(t *testing.T) {
	ranked := makeRanked("a", "b", "c")
	served := Inject(ranked, []string{"a", "b", "c", "x"}, 0, nil)
	for _, s := range served {
		if s.Explored {
			t.Error("zero budget should inject nothing")
		}
	}
}

func TestInject_AtLeastOneSlotWhenBudgetPositive(t *testing.T) {
	ranked := makeRanked("a", "b")
	served := Inject(ranked, []string{"a", "b", "x"}, 0.01, rand.New(rand.NewSource(1)))
	var exploredCount int
	for _, s := range served {
		if s.Explored {
			exploredCount++
		}
	}
	if exploredCount != 1 {
		t.Errorf("expected at least 1 explored slot, got %d", exploredCount)
	}
}

func TestInject_ShortfallBackfillsFromOriginalTail(t *testing.T) {
	ranked := makeRanked("a", "b", "c")
	// Only "a", "b", "c" exist in the corpus — no eligible exploration titles.
	served := Inject(ranked, []string{"a", "b", "c"}, DefaultBudget, rand.New(rand.NewSource(1)))
	for i, s := range served {
		if s.Explored {
			t.Errorf("expected no exploration possible, position %d flagged explored", i)
		}
	}
	if served[len(served)-1].Title != ranked[len(ranked)-1].Title {
		t.Error("expected tail backfill to preserve original ranked entry")
	}
}

func TestInject_InjectedTitlesNotAlreadyPresent(t *testing.T) {
	ranked := makeRanked("a", "b", "c", "d")
	corpus := []string{"a", "b", "c", "d", "new1", "new2"}
	served := Inject(ranked, corpus, 0.5, rand.New(rand.NewSource(7)))
	present := map[string]bool{"a": true, "b": true, "c": true, "d": true}
	for _, s := range served {
		if s.Explored && present[s.Title] {
			t.Errorf("injected title %q should not already be in the ranked list", s.Title)
		}
	}
}
