package vault

import "testing"

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestFS_TraversalBlocked(t *testing.T) {
	s := tempVault(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
}

func TestFS_NewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/ori-mnemos-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestFS_List_MissingNotesDirIsEmptyNotError(t *testing.T) {
	s := tempVault(t)
	items, err := s.List("notes")
	if err != nil {
		t.Fatalf("missing notes dir should not error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}
