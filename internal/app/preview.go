package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chatpilot/toolview/internal/checks"
	"github.com/chatpilot/toolview/internal/plugins"
	"github.com/chatpilot/toolview/internal/render"
)

type PreviewOptions struct {
	// Payload is a path to a JSON tool invocation, or "-" for stdin.
	Payload  string
	Check    bool
	Reporter Reporter
}

// payload mirrors the shape the chat host hands a renderer: the tool name
// plus the raw argument and output values.
type payload struct {
	Tool   string          `json:"tool"`
	Args   json.RawMessage `json:"args"`
	Output json.RawMessage `json:"output"`
}

// Preview runs all three renderer stages of one recorded tool invocation
// and prints the markdown each produced.
func Preview(opts PreviewOptions) error {
	reporter := ensureReporter(opts.Reporter)

	data, err := readPayload(opts.Payload)
	if err != nil {
		return err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if strings.TrimSpace(p.Tool) == "" {
		return fmt.Errorf("payload has no tool name")
	}

	registry := render.NewRegistry()
	if !plugins.RegisterAll(registry) {
		return fmt.Errorf("renderer registration failed")
	}
	bundle, ok := registry.Lookup(p.Tool)
	if !ok {
		return fmt.Errorf("no renderer registered for tool %q", p.Tool)
	}

	ctx := render.Context{
		Args:   decodeValue(p.Args),
		Output: decodeValue(p.Output),
	}

	preview := bundle.QueryPreview(ctx)
	start := bundle.FormatStart(ctx)
	output := bundle.FormatOutput(ctx)

	reporter.Info(fmt.Sprintf("%s (plugin %s)", bundle.ToolName, bundle.PluginID))
	reporter.Stage("preview", preview)
	reporter.Stage("start", start)
	reporter.Stage("output", output)

	if opts.Check {
		for stage, content := range map[string]string{
			"preview": preview,
			"start":   start,
			"output":  output,
		} {
			if err := checks.Markdown(content); err != nil {
				return fmt.Errorf("%s stage: %w", stage, err)
			}
		}
		reporter.Info("markdown checks passed")
	}
	return nil
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

// decodeValue keeps absent fields as nil so formatters see the same shape
// the host would give them.
func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return value
}
