package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscover_FindsMarkerInParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, MarkerFile), nil, 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := Discover(deep)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if found != root {
		t.Errorf("found = %q, want %q", found, root)
	}
}

func TestDiscover_NotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover(dir); err == nil {
		t.Error("expected error when no .ori marker exists")
	}
}
