package vault

import (
	"os"
	"path/filepath"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/apperr"
)

// MarkerFile is the zero-byte-acceptable marker that identifies a vault
// root (§6).
const MarkerFile = ".ori"

// Discover walks upward from start until a directory containing MarkerFile
// is found, returning its absolute path. It returns
// apperr.ErrVaultRootNotFound if the file-system root is reached first —
// the one condition in §7 where the core cannot identify a vault at all.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", apperr.ErrVaultRootNotFound
		}
		dir = parent
	}
}
