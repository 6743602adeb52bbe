// Package config loads toolview.toml, the repository-level settings for the
// packaging pipeline. Every field has a default so the file is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const FileName = "toolview.toml"

type Config struct {
	Plugins PluginsConfig `toml:"plugins"`
	Dist    DistConfig    `toml:"dist"`
}

type PluginsConfig struct {
	// Dir holds one subdirectory per plugin, each with a plugin.yaml.
	Dir string `toml:"dir"`
	// Exclude globs are matched against paths relative to a plugin dir.
	Exclude []string `toml:"exclude"`
}

type DistConfig struct {
	Dir   string `toml:"dir"`
	Index string `toml:"index"`
}

func Default() Config {
	return Config{
		Plugins: PluginsConfig{
			Dir:     "plugins",
			Exclude: []string{"**/.*", "**/*.log"},
		},
		Dist: DistConfig{
			Dir:   "dist",
			Index: "index.json",
		},
	}
}

// Load reads toolview.toml under root, falling back to defaults when the
// file does not exist.
func Load(root string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if strings.TrimSpace(cfg.Plugins.Dir) == "" {
		cfg.Plugins.Dir = Default().Plugins.Dir
	}
	if strings.TrimSpace(cfg.Dist.Dir) == "" {
		cfg.Dist.Dir = Default().Dist.Dir
	}
	if strings.TrimSpace(cfg.Dist.Index) == "" {
		cfg.Dist.Index = Default().Dist.Index
	}
	return cfg, nil
}

// IndexPath resolves the index file location under root.
func (c Config) IndexPath(root string) string {
	return filepath.Join(root, c.Dist.Dir, c.Dist.Index)
}
