package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/chatpilot/toolview/internal/config"
	"github.com/chatpilot/toolview/internal/dist"
)

type StatusOptions struct {
	Reporter Reporter
}

// Status compares each plugin directory against the distribution index:
// missing when the archive was never built or is gone, stale when the
// directory changed since, ok otherwise. Returns an error unless everything
// is ok, so the command is usable as a CI gate.
func Status(root string, opts StatusOptions) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	reporter := ensureReporter(opts.Reporter)

	pluginDirs, err := dist.Discover(root, cfg)
	if err != nil {
		return err
	}
	if len(pluginDirs) == 0 {
		return errors.New("no plugins found")
	}

	index, err := dist.ReadIndex(cfg.IndexPath(root))
	if err != nil {
		return err
	}
	recorded := map[string]dist.IndexEntry{}
	if index != nil {
		for _, entry := range index.Plugins {
			recorded[entry.ID] = entry
		}
	}

	ok := 0
	stale := 0
	missing := 0
	for _, plugin := range pluginDirs {
		m := plugin.Manifest
		archive := m.ArchiveName()
		entry, known := recorded[m.ID]
		if !known {
			missing++
			reporter.Status(StatusMissing, m.ID, archive)
			continue
		}
		archiveAbs := filepath.Join(root, filepath.FromSlash(entry.Archive))
		if _, err := os.Stat(archiveAbs); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			missing++
			reporter.Status(StatusMissing, m.ID, entry.Archive)
			continue
		}
		if entry.Digest != plugin.Digest || entry.Version != m.Version {
			stale++
			reporter.Status(StatusStale, m.ID, entry.Archive)
			continue
		}
		ok++
		reporter.Status(StatusOK, m.ID, entry.Archive)
	}

	reporter.StatusSummary(ok, stale, missing)
	if stale > 0 || missing > 0 {
		return errors.New("plugin archives out of date")
	}
	return nil
}
