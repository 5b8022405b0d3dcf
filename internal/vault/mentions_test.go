package vault

import "testing"

func TestDetectMentions_Basic(t *testing.T) {
	titles := []string{"broker deploy runbook", "broker"}
	body := "See the broker deploy runbook for details, or just check broker status."
	mentions := DetectMentions(body, titles)
	if len(mentions) != 2 {
		t.Fatalf("mentions = %v, want 2", mentions)
	}
	if mentions[0].Title != "broker deploy runbook" {
		t.Errorf("first mention = %q, want longest match", mentions[0].Title)
	}
}

func TestDetectMentions_SkipsInsideWikilinks(t *testing.T) {
	titles := []string{"broker"}
	body := "Already linked as [[broker]], should not double count."
	mentions := DetectMentions(body, titles)
	if len(mentions) != 0 {
		t.Errorf("expected no mentions inside [[ ]], got %v", mentions)
	}
}

func TestDetectMentions_SlugFlexible(t *testing.T) {
	titles := []string{"broker-deploy-runbook"}
	body := "the broker deploy runbook is here"
	mentions := DetectMentions(body, titles)
	if len(mentions) != 1 {
		t.Fatalf("expected slug-flexible match, got %v", mentions)
	}
}

func TestDetectMentions_NonOverlapping(t *testing.T) {
	titles := []string{"broker", "broker deploy"}
	body := "broker deploy happened yesterday"
	mentions := DetectMentions(body, titles)
	if len(mentions) != 1 {
		t.Fatalf("expected one non-overlapping (longest) match, got %v", mentions)
	}
	if mentions[0].Title != "broker deploy" {
		t.Errorf("expected longest match to win, got %q", mentions[0].Title)
	}
}

func TestDetectMentions_EmptyInputs(t *testing.T) {
	if m := DetectMentions("", []string{"a"}); m != nil {
		t.Errorf("empty body should yield nil, got %v", m)
	}
	if m := DetectMentions("some text", nil); m != nil {
		t.Errorf("empty titles should yield nil, got %v", m)
	}
}
