package renderer

import (
	"os"
	"path/filepath"
)

// writeFile writes data to a file, creating the parent directory.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
