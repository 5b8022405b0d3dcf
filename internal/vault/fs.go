package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// FS implements Provider backed by the local file system, rooted at the
// notes/ subdirectory of a vault (or any directory the caller points it at
// directly).
type FS struct {
	root string // absolute path
}

// NewFS creates a new FS provider rooted at the given directory. The
// directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("vault: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("vault: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("vault: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// List enumerates every *.md file under dir (relative to root) using a
// doublestar glob so nested project folders are picked up in one pass.
func (f *FS) List(dir string) ([]models.Metadata, error) {
	base, err := f.safePath(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(base); os.IsNotExist(err) {
		// A missing notes/ directory is an empty corpus, not an error (§7).
		return nil, nil
	}

	fsys := os.DirFS(base)
	matches, err := doublestar.Glob(fsys, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("vault: glob: %w", err)
	}

	out := make([]models.Metadata, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(filepath.Join(base, m))
		if err != nil {
			continue
		}
		rel := m
		if dir != "" {
			rel = filepath.ToSlash(filepath.Join(dir, m))
		}
		out = append(out, models.Metadata{
			Path:    rel,
			Title:   strings.TrimSuffix(filepath.Base(m), ".md"),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}
	return out, nil
}

// Read returns the raw bytes of a vault file.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", path, err)
	}
	return data, nil
}

var _ Provider = (*FS)(nil)
