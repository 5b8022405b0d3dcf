package bm25

import (
	"testing"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

func TestTokenize_DropsStopwordsAndShortTokens(t *testing.T) {
	toks := Tokenize("The quick fox is at a door")
	for _, tok := range toks {
		if stopwords[tok] {
			t.Errorf("stopword %q should have been dropped", tok)
		}
		if len(tok) < 2 {
			t.Errorf("short token %q should have been dropped", tok)
		}
	}
}

func TestTokenize_Lowercases(t *testing.T) {
	toks := Tokenize("HELLO World")
	want := []string{"hello", "world"}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i, w := range want {
		if toks[i] != w {
			t.Errorf("toks[%d] = %q, want %q", i, toks[i], w)
		}
	}
}

func TestBuild_TitleMatchOutranksBodyOnlyMatch(t *testing.T) {
	notes := []*models.Note{
		{Title: "database migration plan", Body: "unrelated content here for padding"},
		{Title: "unrelated note", Body: "mentions database migration deep in the body text"},
	}
	idx := Build(notes, DefaultParams())
	hits := idx.Score("database migration", DefaultParams())
	if len(hits) < 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Title != "database migration plan" {
		t.Errorf("expected title match to outrank body match, got %q first", hits[0].Title)
	}
}

func TestScore_NoMatchingTermsReturnsEmpty(t *testing.T) {
	notes := []*models.Note{{Title: "alpha", Body: "beta gamma"}}
	idx := Build(notes, DefaultParams())
	hits := idx.Score("zzzznomatch", DefaultParams())
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestScore_RarerTermWeightsHigher(t *testing.T) {
	notes := []*models.Note{
		{Title: "a", Body: "common word common word rare term"},
		{Title: "b", Body: "common word common word"},
		{Title: "c", Body: "common word common word"},
	}
	idx := Build(notes, DefaultParams())
	hits := idx.Score("rare", DefaultParams())
	if len(hits) != 1 || hits[0].Title != "a" {
		t.Errorf("expected only 'a' to match rare term, got %+v", hits)
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	idx := Build(nil, DefaultParams())
	hits := idx.Score("anything", DefaultParams())
	if len(hits) != 0 {
		t.Errorf("expected no hits on empty corpus, got %v", hits)
	}
}
