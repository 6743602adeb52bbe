package app

import (
	"errors"

	"github.com/chatpilot/toolview/internal/config"
	"github.com/chatpilot/toolview/internal/dist"
)

type PackOptions struct {
	Force    bool
	DryRun   bool
	Reporter Reporter
}

// Pack archives every plugin directory that changed since the last run and
// rewrites the distribution index.
func Pack(root string, opts PackOptions) error {
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

	indexPath := cfg.IndexPath(root)
	previous, err := dist.ReadIndex(indexPath)
	if err != nil {
		return err
	}
	plan := dist.BuildPlan(root, cfg, pluginDirs, previous, opts.Force)

	toPack := 0
	for _, item := range plan.Plugins {
		if item.Action == dist.ActionPack {
			toPack++
		}
	}

	progress := reporter.Progress("Packing", toPack)
	defer progress.Done()

	packed := 0
	skipped := 0
	entries := make([]dist.IndexEntry, 0, len(plan.Plugins))
	for _, item := range plan.Plugins {
		m := item.Plugin.Manifest
		if item.Action == dist.ActionSkip {
			skipped++
			reporter.Skipped(m.ID)
		} else {
			progress.Increment(m.ID)
			if opts.DryRun {
				reporter.Info("dry-run pack " + m.ID)
			} else {
				if err := dist.WriteArchive(item.Archive, item.Plugin); err != nil {
					return err
				}
				reporter.Packed(m.ID, dist.ArchiveRelPath(root, item.Archive))
			}
			packed++
		}
		entries = append(entries, dist.IndexEntry{
			ID:          m.ID,
			Name:        m.Name,
			Version:     m.Version,
			Description: m.Description,
			Archive:     dist.ArchiveRelPath(root, item.Archive),
			Digest:      item.Plugin.Digest,
			Tools:       m.Tools,
		})
	}

	if opts.DryRun {
		reporter.Info("dry-run: index not written")
		return nil
	}
	if _, err := dist.WriteIndex(indexPath, entries); err != nil {
		return err
	}
	reporter.PackSummary(packed, skipped, dist.ArchiveRelPath(root, indexPath))
	return nil
}
