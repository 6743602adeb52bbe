// Package dist packages plugin directories into zip archives keyed by plugin
// id and version, tracked by a JSON index. Archives whose content digest is
// unchanged since the last run are skipped.
package dist

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/chatpilot/toolview/internal/config"
	"github.com/chatpilot/toolview/internal/digest"
	"github.com/chatpilot/toolview/internal/manifest"
)

// PluginDir is one discovered plugin: its manifest plus the files that go
// into the archive (paths relative to Dir).
type PluginDir struct {
	Dir      string
	Manifest manifest.Manifest
	Files    []string
	Digest   string
}

// Plan lists the discovered plugins and what packing would do with each.
type Plan struct {
	Plugins []PluginPlan
}

type Action string

const (
	ActionPack Action = "pack"
	ActionSkip Action = "skip"
)

type PluginPlan struct {
	Plugin  PluginDir
	Archive string
	Action  Action
}

// Discover walks the configured plugins dir and loads every subdirectory
// that carries a manifest. Plugin ids must be unique.
func Discover(root string, cfg config.Config) ([]PluginDir, error) {
	pluginsDir := filepath.Join(root, cfg.Plugins.Dir)
	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("plugins directory %s does not exist", pluginsDir)
		}
		return nil, err
	}

	seen := map[string]string{}
	var plugins []PluginDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(pluginsDir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, manifest.FileName)); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		m, err := manifest.Read(dir)
		if err != nil {
			return nil, err
		}
		if previous, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("duplicate plugin id %q in %s and %s", m.ID, previous, dir)
		}
		seen[m.ID] = dir

		files, err := listFiles(dir, cfg.Plugins.Exclude)
		if err != nil {
			return nil, err
		}
		contentDigest, err := digest.Files(dir, files)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, PluginDir{
			Dir:      dir,
			Manifest: m,
			Files:    files,
			Digest:   contentDigest,
		})
	}

	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Manifest.ID < plugins[j].Manifest.ID
	})
	return plugins, nil
}

// listFiles collects the relative file paths to archive, applying the
// exclude globs.
func listFiles(dir string, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range exclude {
			matched, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
			}
			if matched {
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// BuildPlan decides, per plugin, whether a fresh archive is needed. A plugin
// is skipped when the previous index records the same digest and the archive
// file still exists.
func BuildPlan(root string, cfg config.Config, plugins []PluginDir, previous *Index, force bool) Plan {
	recorded := map[string]IndexEntry{}
	if previous != nil {
		for _, entry := range previous.Plugins {
			recorded[entry.ID] = entry
		}
	}

	plan := Plan{}
	for _, plugin := range plugins {
		archive := filepath.Join(root, cfg.Dist.Dir, plugin.Manifest.ArchiveName())
		action := ActionPack
		if !force {
			if entry, ok := recorded[plugin.Manifest.ID]; ok &&
				entry.Digest == plugin.Digest &&
				entry.Version == plugin.Manifest.Version {
				if _, err := os.Stat(archive); err == nil {
					action = ActionSkip
				}
			}
		}
		plan.Plugins = append(plan.Plugins, PluginPlan{
			Plugin:  plugin,
			Archive: archive,
			Action:  action,
		})
	}
	return plan
}

// WriteArchive zips the plugin files into path.
func WriteArchive(path string, plugin PluginDir) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	writer := zip.NewWriter(out)

	for _, rel := range plugin.Files {
		entry, err := writer.Create(rel)
		if err != nil {
			writer.Close()
			out.Close()
			return err
		}
		file, err := os.Open(filepath.Join(plugin.Dir, rel))
		if err != nil {
			writer.Close()
			out.Close()
			return err
		}
		_, err = io.Copy(entry, file)
		file.Close()
		if err != nil {
			writer.Close()
			out.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ArchiveRelPath is the index-facing path of an archive, relative to root.
func ArchiveRelPath(root, archive string) string {
	rel, err := filepath.Rel(root, archive)
	if err != nil {
		return filepath.ToSlash(archive)
	}
	return filepath.ToSlash(rel)
}

// ToolNames flattens the declared tool names of the given plugins.
func ToolNames(plugins []PluginDir) []string {
	var names []string
	for _, plugin := range plugins {
		for _, tool := range plugin.Manifest.Tools {
			if tool = strings.TrimSpace(tool); tool != "" {
				names = append(names, tool)
			}
		}
	}
	sort.Strings(names)
	return names
}
