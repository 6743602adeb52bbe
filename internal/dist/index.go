package dist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Index is the distribution index the host application downloads to learn
// which plugin archives exist.
type Index struct {
	BuildID     string       `json:"build_id"`
	GeneratedAt string       `json:"generated_at"`
	Plugins     []IndexEntry `json:"plugins"`
}

type IndexEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Archive     string   `json:"archive"`
	Digest      string   `json:"digest"`
	Tools       []string `json:"tools,omitempty"`
}

// ReadIndex loads a previously written index; a missing file yields nil.
func ReadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// WriteIndex stores the index with a fresh build id and timestamp.
func WriteIndex(path string, entries []IndexEntry) (Index, error) {
	index := Index{
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Plugins:     entries,
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Index{}, err
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return Index{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Index{}, err
	}
	return index, nil
}
