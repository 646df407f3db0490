package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// RootMarker is the directory holding project-local stacks.
const RootMarker = ".pilha"

// ErrNoRoot is returned by FindRoot when no enclosing project is found.
var ErrNoRoot = errors.New("no " + RootMarker + " directory found")

// FindRoot recursively looks upwards for a directory containing RootMarker.
// If found, returns the absolute path to that directory (not the marker).
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, RootMarker)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoRoot
		}
		dir = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
