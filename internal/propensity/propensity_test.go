package propensity

import (
	"path/filepath"
	"testing"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/fusion"
)

func TestLog_AppendAndCompute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	served := []fusion.Served{
		{Title: "a", Score: 0.9},
		{Title: "b", Score: 0.5, Explored: true},
	}
	for i := 0; i < 4; i++ {
		if err := log.Append("query", "semantic", served); err != nil {
			t.Fatal(err)
		}
	}
	onlyA := []fusion.Served{{Title: "a", Score: 1.0}}
	if err := log.Append("another query", "episodic", onlyA); err != nil {
		t.Fatal(err)
	}
	log.Close()

	props, err := Compute(path)
	if err != nil {
		t.Fatal(err)
	}
	if props["a"] != 1.0 {
		t.Errorf("propensity[a] = %f, want 1.0 (appeared in all 5 events)", props["a"])
	}
	if props["b"] < 0.79 || props["b"] > 0.81 {
		t.Errorf("propensity[b] = %f, want ~0.8 (4 of 5 events)", props["b"])
	}
}

func TestCompute_EmptyLogReturnsEmptyMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.jsonl")
	props, err := Compute(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(props) != 0 {
		t.Errorf("expected empty map for missing log, got %v", props)
	}
}

func TestCompute_FloorsAtEpsilon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		served := []fusion.Served{{Title: "common", Score: 1}}
		if i == 0 {
			served = append(served, fusion.Served{Title: "rare", Score: 0.1})
		}
		if err := log.Append("q", "semantic", served); err != nil {
			t.Fatal(err)
		}
	}
	log.Close()

	props, err := Compute(path)
	if err != nil {
		t.Fatal(err)
	}
	if props["rare"] != Epsilon {
		t.Errorf("propensity[rare] = %f, want floor %f", props["rare"], Epsilon)
	}
}

func TestLog_DedupesRepeatedTitleWithinOneEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	served := []fusion.Served{{Title: "a"}, {Title: "a"}}
	if err := log.Append("q", "semantic", served); err != nil {
		t.Fatal(err)
	}
	log.Close()

	props, err := Compute(path)
	if err != nil {
		t.Fatal(err)
	}
	if props["a"] != 1.0 {
		t.Errorf("propensity[a] = %f, want 1.0 for single event regardless of duplicate entries", props["a"])
	}
}
