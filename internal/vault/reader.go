package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// Reader is the Corpus Reader component (spec §4.1): it enumerates a
// vault's notes/ directory and parses each file into a models.Note.
type Reader struct {
	provider Provider
	logger   *slog.Logger
}

// NewReader constructs a Reader over provider. A nil logger falls back to
// slog.Default().
func NewReader(provider Provider, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{provider: provider, logger: logger}
}

// ReadAll parses every note in the corpus. Per-file failures are logged and
// skipped rather than aborting the whole read (§7); a missing notes/
// directory yields an empty, non-error corpus.
func (r *Reader) ReadAll() ([]*models.Note, error) {
	metas, err := r.provider.List("")
	if err != nil {
		return nil, fmt.Errorf("vault: list: %w", err)
	}

	now := time.Now()
	notes := make([]*models.Note, 0, len(metas))
	for _, m := range metas {
		data, err := r.provider.Read(m.Path)
		if err != nil {
			r.logger.Warn("vault: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		notes = append(notes, r.parseNote(m, data, now))
	}
	return notes, nil
}

func (r *Reader) parseNote(m models.Metadata, data []byte, now time.Time) *models.Note {
	res := Parse(data)

	title := strings.TrimSuffix(filepath.Base(m.Path), ".md")
	n := &models.Note{
		Title: title,
		Path:  m.Path,
		Body:  res.Body,
		Links: res.Links,
	}
	n.Warnings = append(n.Warnings, res.Warnings...)

	if res.Frontmatter != nil {
		n.Warnings = append(n.Warnings, applyFrontmatter(n, res.Frontmatter, now)...)
	} else {
		n.Created = now
		n.LastAccessed = now
		n.Status = models.StatusInbox
		n.Extra = map[string]any{}
	}

	for _, w := range n.Warnings {
		r.logger.Warn("vault: header warning", slog.String("path", m.Path), slog.String("warning", w))
	}
	return n
}

// Checksum returns the hex-encoded SHA-256 digest of data. The embedding
// index computes its own content fingerprint (embedding.ContentHash) and
// does not call it.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Titles extracts the Title of every note, for use with DetectMentions or
// intent entity extraction.
func Titles(notes []*models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
