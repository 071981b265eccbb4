// Package snapshot serializes a loaded project to a compressed file so
// other tooling can consume it without re-running a load.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/Sevistuo/cquery/internal/project"
	"github.com/Sevistuo/cquery/internal/version"
)

// Manifest identifies one capture of a project.
type Manifest struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	Root       string    `json:"root"`
	Version    string    `json:"version"`
	EntryCount int       `json:"entryCount"`
}

// Snapshot is the serialized form of a loaded project.
type Snapshot struct {
	Manifest                Manifest        `json:"manifest"`
	Entries                 []project.Entry `json:"entries"`
	QuoteIncludeDirectories []string        `json:"quoteIncludeDirectories"`
	AngleIncludeDirectories []string        `json:"angleIncludeDirectories"`
}

// Capture builds a snapshot of p rooted at root.
func Capture(p *project.Project, root string) *Snapshot {
	return &Snapshot{
		Manifest: Manifest{
			ID:         uuid.NewString(),
			CreatedAt:  time.Now().UTC(),
			Root:       root,
			Version:    version.Version,
			EntryCount: len(p.Entries),
		},
		Entries:                 p.Entries,
		QuoteIncludeDirectories: p.QuoteIncludeDirectories,
		AngleIncludeDirectories: p.AngleIncludeDirectories,
	}
}

// Write stores the snapshot at path as zstd-compressed JSON.
func Write(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	return f.Close()
}

// Read loads a snapshot previously stored with Write.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer zr.Close()

	var s Snapshot
	if err := json.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &s, nil
}
