package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoInstalledPalette is returned when no palette has been recorded yet.
var ErrNoInstalledPalette = errors.New("no installed palette recorded")

// State persists the name of the currently installed palette. It is an
// explicit object rather than ambient global state so concurrent test
// runs do not interfere.
type State struct {
	Path string
}

type stateFile struct {
	Palette string `json:"palette"`
}

// NewState creates a state handle backed by the given file path.
func NewState(path string) *State {
	return &State{Path: path}
}

// DefaultStatePath returns the conventional state file location.
func DefaultStatePath(home string) string {
	return filepath.Join(home, ".local", "share", "huectl", "installed-palette.json")
}

// Load reads the installed palette name.
func (s *State) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoInstalledPalette
		}
		return "", fmt.Errorf("failed to read palette state: %w", err)
	}

	var f stateFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("failed to parse palette state: %w", err)
	}
	if f.Palette == "" {
		return "", ErrNoInstalledPalette
	}
	return f.Palette, nil
}

// Save records the installed palette name.
func (s *State) Save(name string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.Marshal(stateFile{Palette: name})
	if err != nil {
		return fmt.Errorf("failed to marshal palette state: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write palette state: %w", err)
	}
	return nil
}
