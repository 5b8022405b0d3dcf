package intent

import "testing"

func TestClassify_Episodic(t *testing.T) {
	c := Classify("what did I decide last time about the database migration", nil)
	if c.Intent != Episodic {
		t.Errorf("intent = %v, want Episodic", c.Intent)
	}
}

func TestClassify_Procedural(t *testing.T) {
	c := Classify("how do I set up the deployment pipeline, what are the steps", nil)
	if c.Intent != Procedural {
		t.Errorf("intent = %v, want Procedural", c.Intent)
	}
	if c.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0 for 2 matches", c.Confidence)
	}
}

func TestClassify_Decision(t *testing.T) {
	c := Classify("should I choose postgres or sqlite for this", nil)
	if c.Intent != Decision {
		t.Errorf("intent = %v, want Decision", c.Intent)
	}
}

func TestClassify_DefaultsToSemanticOnNoMatch(t *testing.T) {
	c := Classify("zzz flibbertigibbet nonsense query", nil)
	if c.Intent != Semantic {
		t.Errorf("intent = %v, want Semantic default", c.Intent)
	}
	if c.Confidence != 0.5 {
		t.Errorf("confidence = %f, want 0.5 default", c.Confidence)
	}
}

func TestClassify_SemanticExplicit(t *testing.T) {
	c := Classify("what is the meaning of the authority score", nil)
	if c.Intent != Semantic {
		t.Errorf("intent = %v, want Semantic", c.Intent)
	}
}

func TestClassify_ExtractsEntitiesPreferringLongerMatch(t *testing.T) {
	titles := []string{"auth", "auth service migration", "migration"}
	c := Classify("tell me about the auth service migration plan", titles)
	found := map[string]bool{}
	for _, e := range c.Entities {
		found[e] = true
	}
	if !found["auth service migration"] {
		t.Errorf("expected longest entity match, got %v", c.Entities)
	}
	if found["auth"] || found["migration"] {
		t.Errorf("shorter overlapping matches should be suppressed, got %v", c.Entities)
	}
}

func TestClassify_NoEntityMatches(t *testing.T) {
	c := Classify("nothing here matches anything", []string{"unrelated title"})
	if len(c.Entities) != 0 {
		t.Errorf("expected no entities, got %v", c.Entities)
	}
}

func TestSpaceWeightsFor_SumToOne(t *testing.T) {
	for _, i := range []Intent{Semantic, Episodic, Procedural, Decision} {
		w := SpaceWeightsFor(i)
		sum := w.Text + w.Temporal + w.Vitality + w.Importance + w.Type + w.Community
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("%v space weights sum to %f, want 1", i, sum)
		}
	}
}

func TestSplitWeightsFor_SumToOne(t *testing.T) {
	for _, i := range []Intent{Semantic, Episodic, Procedural, Decision} {
		w := SplitWeightsFor(i)
		sum := w.Title + w.Description + w.Body
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("%v split weights sum to %f, want 1", i, sum)
		}
	}
}

func TestImportanceTarget(t *testing.T) {
	if ImportanceTarget(Procedural) != 0.8 {
		t.Error("procedural importance target should be 0.8")
	}
	if ImportanceTarget(Semantic) != 0.5 {
		t.Error("semantic importance target should be 0.5")
	}
}
