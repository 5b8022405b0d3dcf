package vault

import (
	"testing"
	"time"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

func fixedNow() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntype: idea\ndescription: a test note\nproject:\n  - alpha\n---\n# Hello\nBody text.\n")
	r := Parse(input)
	if r.Frontmatter == nil {
		t.Fatalf("expected frontmatter, got nil")
	}
	if r.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r := Parse(input)
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r := Parse(input)
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for invalid YAML header")
	}
}

func TestExtractLinks_Basic(t *testing.T) {
	body := "See [[Note A]] and [[Note B|alias]].\nAlso [[Note A]] again."
	links := extractLinks(body)
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	if links[0] != "Note A" || links[1] != "Note B" {
		t.Errorf("links = %v", links)
	}
}

func TestExtractLinks_EmptyTarget(t *testing.T) {
	links := extractLinks("see [[ ]] and [[|alias]]")
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestApplyFrontmatter_ProjectAndAccessCount(t *testing.T) {
	fm := map[string]any{
		"type":          "decision",
		"project":       []any{"alpha", "beta"},
		"access_count":  5,
		"status":        "active",
		"created":       "2024-01-01",
		"last_accessed": "2024-06-01",
	}
	n := &models.Note{}
	warnings := applyFrontmatter(n, fm, fixedNow())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if n.Type != "decision" || n.AccessCount != 5 || len(n.Project) != 2 {
		t.Errorf("note = %+v", n)
	}
}

func TestApplyFrontmatter_LastAccessedClampedToCreated(t *testing.T) {
	fm := map[string]any{
		"created":       "2024-06-01",
		"last_accessed": "2024-01-01",
	}
	n := &models.Note{}
	applyFrontmatter(n, fm, fixedNow())
	if n.LastAccessed.Before(n.Created) {
		t.Errorf("last_accessed %v should not precede created %v", n.LastAccessed, n.Created)
	}
}
