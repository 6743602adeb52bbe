package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingReporter struct {
	noopReporter
	infos  []string
	stages map[string]string
	tools  []string
	status map[string]StatusKind
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{
		stages: map[string]string{},
		status: map[string]StatusKind{},
	}
}

func (r *recordingReporter) Info(message string)            { r.infos = append(r.infos, message) }
func (r *recordingReporter) Stage(name, content string)     { r.stages[name] = content }
func (r *recordingReporter) Tool(pluginID, toolName string) { r.tools = append(r.tools, toolName) }
func (r *recordingReporter) Status(kind StatusKind, id, archive string) {
	r.status[id] = kind
}

func TestListReportsEveryAlias(t *testing.T) {
	reporter := newRecordingReporter()
	if err := List(ListOptions{Reporter: reporter}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reporter.tools) != 14 {
		t.Fatalf("tools = %d: %v", len(reporter.tools), reporter.tools)
	}
	seen := map[string]bool{}
	for _, name := range reporter.tools {
		seen[name] = true
	}
	for _, want := range []string{"memory.remember", "web.search.duckduckgo", "web.visit.website", "system.time", "chat.set_mood"} {
		if !seen[want] {
			t.Fatalf("missing tool %q in %v", want, reporter.tools)
		}
	}
}

func TestPreviewRendersAllStages(t *testing.T) {
	payloadJSON := `{
		"tool": "memory.remember",
		"args": {"fact": "Prefers dark roast coffee"},
		"output": {"status": "saved", "memory": {"fact": "Prefers dark roast coffee", "key": "coffee"}}
	}`
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(payloadJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	reporter := newRecordingReporter()
	if err := Preview(PreviewOptions{Payload: path, Check: true, Reporter: reporter}); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(reporter.stages["preview"], "Prefers dark roast coffee") {
		t.Fatalf("preview = %q", reporter.stages["preview"])
	}
	if !strings.Contains(reporter.stages["start"], "*Saving to memory:*") {
		t.Fatalf("start = %q", reporter.stages["start"])
	}
	if !strings.Contains(reporter.stages["output"], "**Memory saved**") {
		t.Fatalf("output = %q", reporter.stages["output"])
	}
}

func TestPreviewUnknownTool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(`{"tool":"calendar.create_event"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Preview(PreviewOptions{Payload: path, Reporter: newRecordingReporter()})
	if err == nil || !strings.Contains(err.Error(), "no renderer registered") {
		t.Fatalf("err = %v", err)
	}
}

func TestPackThenStatus(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "plugins", "alpha")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugin.yaml"), []byte("id: alpha\nversion: 1.0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.js"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	reporter := newRecordingReporter()
	if err := Pack(root, PackOptions{Reporter: reporter}); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if err := Status(root, StatusOptions{Reporter: reporter}); err != nil {
		t.Fatalf("Status after pack: %v", err)
	}
	if reporter.status["alpha"] != StatusOK {
		t.Fatalf("status = %q", reporter.status["alpha"])
	}

	if err := os.WriteFile(filepath.Join(dir, "main.js"), []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Status(root, StatusOptions{Reporter: reporter})
	if err == nil {
		t.Fatal("expected stale error")
	}
	if reporter.status["alpha"] != StatusStale {
		t.Fatalf("status = %q", reporter.status["alpha"])
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "toolview.toml"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "plugins", "alpha")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := FindRoot(nested); got != root {
		t.Fatalf("FindRoot = %q, want %q", got, root)
	}

	bare := t.TempDir()
	if got := FindRoot(bare); got != bare {
		t.Fatalf("FindRoot = %q, want %q", got, bare)
	}
}
