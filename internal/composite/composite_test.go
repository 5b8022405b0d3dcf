package composite

import (
	"context"
	"testing"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/embedding"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/intent"
)

func TestEncode_BelowBinsAreOneAboveAreZero(t *testing.T) {
	v := Encode(0.35, 10)
	if len(v) != 10 {
		t.Fatalf("len = %d, want 10", len(v))
	}
	for i := 0; i < 3; i++ {
		if v[i] != 1 {
			t.Errorf("bin %d = %f, want 1", i, v[i])
		}
	}
	if v[3] < 0.49 || v[3] > 0.51 {
		t.Errorf("fractional bin = %f, want ~0.5", v[3])
	}
	for i := 4; i < 10; i++ {
		if v[i] != 0 {
			t.Errorf("bin %d = %f, want 0", i, v[i])
		}
	}
}

func TestEncode_OneSetsAllBins(t *testing.T) {
	v := Encode(1.0, 5)
	for i, x := range v {
		if x != 1 {
			t.Errorf("bin %d = %f, want 1 when v=1", i, x)
		}
	}
}

func TestEncode_ZeroIsZeroVector(t *testing.T) {
	v := Encode(0.0, 5)
	for i, x := range v {
		if x != 0 {
			t.Errorf("bin %d = %f, want 0 at v=0", i, x)
		}
	}
}

func TestEncode_MonotoneSimilarityAsValuesConverge(t *testing.T) {
	target := Encode(1.0, 10)
	far := cosine64(Encode(0.1, 10), target)
	near := cosine64(Encode(0.9, 10), target)
	if near <= far {
		t.Errorf("closer value should have higher similarity: near=%f far=%f", near, far)
	}
}

func makeFacts(title string, vec embedding.Vectors, days, vitality, pagerank, maxPagerank float64) NoteFacts {
	return NoteFacts{Title: title, Vectors: vec, DaysSinceIndex: days, Vitality: vitality, Pagerank: pagerank, MaxPagerank: maxPagerank}
}

func TestScore_RanksRelevantTextHigher(t *testing.T) {
	e := embedding.NewHashEmbedder(32)
	ctx := context.Background()
	relevant, _ := e.Embed(ctx, "database migration plan")
	irrelevant, _ := e.Embed(ctx, "unrelated topic about gardening")

	notes := []NoteFacts{
		makeFacts("a", embedding.Vectors{Title: relevant, Desc: relevant, Body: relevant}, 1, 0.5, 1, 1),
		makeFacts("b", embedding.Vectors{Title: irrelevant, Desc: irrelevant, Body: irrelevant}, 1, 0.5, 1, 1),
	}
	cls := intent.Classify("database migration plan", nil)
	results, err := Score(ctx, e, "database migration plan", cls, notes, nil, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Title != "a" {
		t.Errorf("expected 'a' to rank first, got %+v", results)
	}
}

func TestScore_TopKTrims(t *testing.T) {
	e := embedding.NewHashEmbedder(16)
	ctx := context.Background()
	var notes []NoteFacts
	for i := 0; i < 5; i++ {
		v, _ := e.Embed(ctx, string(rune('a'+i)))
		notes = append(notes, makeFacts(string(rune('a'+i)), embedding.Vectors{Title: v, Desc: v, Body: v}, 1, 0.5, 1, 1))
	}
	cls := intent.Classify("a", nil)
	results, err := Score(ctx, e, "a", cls, notes, nil, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("expected top-2 trim, got %d", len(results))
	}
}

func TestCommunitySpace_ZeroVectorIsZero(t *testing.T) {
	if s := communitySpace(make([]float32, 8)); s != 0 {
		t.Errorf("zero community vector should score 0, got %f", s)
	}
	nonzero := make([]float32, 8)
	nonzero[0] = 0.3
	if s := communitySpace(nonzero); s != 0.5 {
		t.Errorf("non-zero community vector should score 0.5, got %f", s)
	}
}

func TestNormalizedPagerank_ZeroMaxIsZero(t *testing.T) {
	if v := normalizedPagerank(0.5, 0); v != 0 {
		t.Errorf("expected 0 when maxPagerank is 0, got %f", v)
	}
}
