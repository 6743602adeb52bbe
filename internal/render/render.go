// Package render defines the renderer bundle contract a plugin registers per
// tool name, plus the shared machinery that turns raw tool payloads into
// chat-transcript markdown.
package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Context carries the raw invocation payload a formatter reads. Args is
// available from the moment a tool call starts; Output only after the tool
// finishes. Both are caller-owned and may hold anything, including nil.
type Context struct {
	Args   any
	Output any
}

// Format is a single presentation callback. It must be total: arbitrary or
// malformed payloads yield a degraded string, worst case "".
type Format func(Context) string

// Template is a bundle without identity. The registrar merges a plugin id and
// a per-alias tool name into it during registration.
type Template struct {
	QueryPreview Format
	FormatStart  Format
	FormatOutput Format
}

// Bundle is the contract object handed to the host registry.
type Bundle struct {
	PluginID     string
	ToolName     string
	QueryPreview Format
	FormatStart  Format
	FormatOutput Format
}

// Bind merges identity into the template, producing a registrable bundle.
func (t Template) Bind(pluginID, toolName string) Bundle {
	return Bundle{
		PluginID:     pluginID,
		ToolName:     toolName,
		QueryPreview: t.QueryPreview,
		FormatStart:  t.FormatStart,
		FormatOutput: t.FormatOutput,
	}
}

// Host is the registration capability the chat application exposes. It may
// not exist yet when a plugin loads; the registrar probes for it.
type Host interface {
	RegisterToolRenderer(bundle Bundle) error
}

// Registry is an in-process Host used by the CLI harness and tests. Renderer
// re-registration replaces the previous bundle.
type Registry struct {
	mu      sync.RWMutex
	bundles map[string]Bundle
}

func NewRegistry() *Registry {
	return &Registry{bundles: map[string]Bundle{}}
}

func (r *Registry) RegisterToolRenderer(bundle Bundle) error {
	name := strings.ToLower(strings.TrimSpace(bundle.ToolName))
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bundles[name] = bundle
	return nil
}

// Lookup fetches a bundle by tool name, tolerating case and padding.
func (r *Registry) Lookup(toolName string) (Bundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bundle, ok := r.bundles[strings.ToLower(strings.TrimSpace(toolName))]
	return bundle, ok
}

// Names lists registered tool names in stable order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.bundles))
	for name := range r.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
