package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// New constructs a Manifest from a set of entries, deriving the file,
// directory, and size totals. The entries slice is used as-is and must not
// be mutated afterwards.
func New(checkpointID, sprite, basePath string, entries []Entry) *Manifest {
	m := &Manifest{
		CheckpointID: checkpointID,
		Sprite:       sprite,
		CreatedAt:    time.Now().UTC(),
		BasePath:     basePath,
		Files:        entries,
	}
	if m.Files == nil {
		m.Files = []Entry{}
	}

	for _, e := range m.Files {
		switch e.Type {
		case TypeFile:
			m.TotalFiles++
			m.TotalSize += e.Size
		case TypeDirectory:
			m.TotalDirs++
		}
	}

	return m
}

// Decode parses a manifest from JSON. A manifest with a missing or null
// files collection decodes to an empty file list rather than an error, so
// partial or old manifests still compare cleanly.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	if m.Files == nil {
		m.Files = []Entry{}
	}
	return &m, nil
}

// Load reads and parses a manifest from a JSON file.
func Load(path string) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("manifest path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return Decode(data)
}

// Save writes the manifest to a JSON file, atomically via a temp file and
// rename.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Index builds a path → Entry lookup from the manifest's files.
// Paths are unique by construction; if a scan race produced a duplicate,
// the later entry silently wins.
func (m *Manifest) Index() map[string]Entry {
	idx := make(map[string]Entry, len(m.Files))
	for _, e := range m.Files {
		idx[e.Path] = e
	}
	return idx
}
