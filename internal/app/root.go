package app

import (
	"os"
	"path/filepath"

	"github.com/chatpilot/toolview/internal/config"
)

// FindRoot walks up from baseDir looking for a toolview.toml or a .git
// directory. When neither is found it returns baseDir unchanged.
func FindRoot(baseDir string) string {
	dir := baseDir
	for {
		if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
			return dir
		}
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return baseDir
		}
		dir = parent
	}
}
