package vault

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// AferoProvider adapts an afero.Fs (typically afero.NewMemMapFs()) to
// Provider, so tests can build corpora in memory instead of touching the
// real file system (grounded on josephgoksu-TaskWing's use of afero).
type AferoProvider struct {
	fs   afero.Fs
	root string
}

// NewAferoProvider roots the provider at root within fs.
func NewAferoProvider(fsys afero.Fs, root string) *AferoProvider {
	return &AferoProvider{fs: fsys, root: root}
}

func (a *AferoProvider) List(dir string) ([]models.Metadata, error) {
	base := filepath.Join(a.root, dir)
	if exists, _ := afero.DirExists(a.fs, base); !exists {
		return nil, nil
	}
	var out []models.Metadata
	err := afero.Walk(a.fs, base, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(a.root, p)
		if relErr != nil {
			return nil
		}
		out = append(out, models.Metadata{
			Path:    filepath.ToSlash(rel),
			Title:   strings.TrimSuffix(info.Name(), ".md"),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AferoProvider) Read(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, filepath.Join(a.root, path))
}

var _ Provider = (*AferoProvider)(nil)
