// Package atomicfile writes files so a reader never observes a partially
// written one: write to a temp file beside the target, then rename over it.
package atomicfile

import (
	"os"
	"path/filepath"
)

// Write atomically replaces path with content, creating parent directories
// as needed.
func Write(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
