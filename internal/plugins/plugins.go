// Package plugins catalogs the built-in renderer plugins and registers them
// as one unit.
package plugins

import (
	"github.com/chatpilot/toolview/internal/plugins/chatmood"
	"github.com/chatpilot/toolview/internal/plugins/systime"
	"github.com/chatpilot/toolview/internal/plugins/usermemory"
	"github.com/chatpilot/toolview/internal/plugins/websearch"
	"github.com/chatpilot/toolview/internal/plugins/website"
	"github.com/chatpilot/toolview/internal/render"
)

type Family struct {
	PluginID    string
	Description string
	Register    func(render.Host) bool
	Bundles     func() []render.Bundle
}

var families = []Family{
	{
		PluginID:    usermemory.PluginID,
		Description: "Remember, recall, and forget user facts.",
		Register:    usermemory.Register,
		Bundles:     usermemory.Bundles,
	},
	{
		PluginID:    websearch.PluginID,
		Description: "DuckDuckGo web search results.",
		Register:    websearch.Register,
		Bundles:     websearch.Bundles,
	},
	{
		PluginID:    website.PluginID,
		Description: "Visited page title, content, and outbound links.",
		Register:    website.Register,
		Bundles:     website.Bundles,
	},
	{
		PluginID:    systime.PluginID,
		Description: "Local time and timezone.",
		Register:    systime.Register,
		Bundles:     systime.Bundles,
	},
	{
		PluginID:    chatmood.PluginID,
		Description: "Chat mood changes.",
		Register:    chatmood.Register,
		Bundles:     chatmood.Bundles,
	},
}

// Families returns the catalog in registration order.
func Families() []Family {
	out := make([]Family, len(families))
	copy(out, families)
	return out
}

// RegisterAll registers every family against host. It succeeds only when
// every family registered.
func RegisterAll(host render.Host) bool {
	ok := true
	for _, family := range families {
		ok = family.Register(host) && ok
	}
	return ok
}
