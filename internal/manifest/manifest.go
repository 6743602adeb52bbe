// Package manifest reads the plugin.yaml file each plugin directory carries.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const FileName = "plugin.yaml"

type Manifest struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description"`
	Tools       []string `yaml:"tools"`
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Read loads and validates the manifest inside dir.
func Read(dir string) (Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m Manifest) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("id is required")
	}
	if !idPattern.MatchString(m.ID) {
		return fmt.Errorf("invalid id %q", m.ID)
	}
	if strings.TrimSpace(m.Version) == "" {
		return errors.New("version is required")
	}
	if !versionPattern.MatchString(m.Version) {
		return fmt.Errorf("invalid version %q", m.Version)
	}
	for _, tool := range m.Tools {
		if strings.TrimSpace(tool) == "" {
			return errors.New("tool names must be non-empty")
		}
	}
	return nil
}

// ArchiveName is the distribution key for this manifest.
func (m Manifest) ArchiveName() string {
	return m.ID + "-" + m.Version + ".zip"
}

// Write stores the manifest into dir.
func Write(dir string, m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0o644)
}
