package app

import (
	"fmt"

	"github.com/chatpilot/toolview/internal/plugins"
	"github.com/chatpilot/toolview/internal/render"
)

type ListOptions struct {
	Reporter Reporter
}

// List prints every tool name the built-in plugins register, with the
// owning plugin id.
func List(opts ListOptions) error {
	reporter := ensureReporter(opts.Reporter)

	registry := render.NewRegistry()
	if !plugins.RegisterAll(registry) {
		return fmt.Errorf("renderer registration failed")
	}
	for _, name := range registry.Names() {
		bundle, ok := registry.Lookup(name)
		if !ok {
			continue
		}
		reporter.Tool(bundle.PluginID, name)
	}
	return nil
}
