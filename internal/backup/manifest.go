// Package backup snapshots files and configuration keys before mutation
// and persists a manifest that is the sole source of truth for restoration.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestName is the manifest file name inside each backup directory.
const ManifestName = "manifest.json"

// FileRecord maps an original file to its backup copy.
type FileRecord struct {
	Original string `json:"original"`
	Backup   string `json:"backup"`
}

// KeyRecord maps a configuration subtree to its dumped backup file.
type KeyRecord struct {
	Path   string `json:"path"`
	Backup string `json:"backup"`
}

// Manifest records everything backed up in one installation run. It is
// appended to during the run, written once at run end, and immutable
// after that.
type Manifest struct {
	Timestamp  string       `json:"timestamp"`
	Files      []FileRecord `json:"files"`
	ConfigKeys []KeyRecord  `json:"dconf"`
}

// LoadManifest reads a manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
