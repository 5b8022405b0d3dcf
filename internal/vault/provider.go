// Package vault implements the Corpus Reader component (spec §4.1): it
// turns a directory of Markdown notes into parsed Note records, and exposes
// the title-mention detector (DetectMentions) for matching known titles
// inside free text.
package vault

import "github.com/aayoawoyemi/Ori-Mnemos/internal/models"

// Provider is the read-only file-system abstraction the corpus reader runs
// against. Production code uses FS; tests can substitute an afero-backed
// implementation.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the
	// vault root; "" lists the whole tree).
	List(dir string) ([]models.Metadata, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
}
