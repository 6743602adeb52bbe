package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadValidManifest(t *testing.T) {
	dir := t.TempDir()
	content := "id: user-memory\nname: User Memory\nversion: 1.2.0\ntools:\n  - memory.remember\n  - memory.recall\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.ID != "user-memory" {
		t.Fatalf("id = %q", m.ID)
	}
	if len(m.Tools) != 2 {
		t.Fatalf("tools = %v", m.Tools)
	}
	if got := m.ArchiveName(); got != "user-memory-1.2.0.zip" {
		t.Fatalf("archive name = %q", got)
	}
}

func TestReadRejectsBadManifests(t *testing.T) {
	cases := map[string]string{
		"missing id":      "version: 1.0.0\n",
		"uppercase id":    "id: User-Memory\nversion: 1.0.0\n",
		"missing version": "id: user-memory\n",
		"loose version":   "id: user-memory\nversion: v1\n",
		"empty tool":      "id: user-memory\nversion: 1.0.0\ntools:\n  - \"\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Read(dir); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := Manifest{ID: "system-time", Name: "System Time", Version: "0.1.0", Tools: []string{"system.time"}}
	if err := Write(dir, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.ID != in.ID || out.Version != in.Version || len(out.Tools) != 1 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
