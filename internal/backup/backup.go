package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/huectl/huectl/internal/dconf"
)

// Backup errors.
var (
	ErrManifestMissing = errors.New("no manifest found in backup")
)

// Mode selects how the manager treats backup requests.
type Mode int

const (
	// ModeWrite copies state aside before steps overwrite it.
	ModeWrite Mode = iota
	// ModeDryRun touches nothing; requests are logged as what would
	// happen.
	ModeDryRun
	// ModeDisabled skips backups during a run that mutates for real.
	ModeDisabled
)

// Manager scopes backups to one installation run, identified by a
// timestamp chosen at construction. The timestamp doubles as the
// backup directory name.
type Manager struct {
	root      string
	home      string
	timestamp string
	dir       string
	mode      Mode
	dconf     *dconf.Client
	logger    zerolog.Logger
	manifest  Manifest
	saved     bool
}

// NewManager creates a run-scoped backup manager under root.
func NewManager(root, home string, dc *dconf.Client, mode Mode, logger zerolog.Logger) *Manager {
	timestamp := time.Now().Format("20060102_150405")
	return &Manager{
		root:      root,
		home:      home,
		timestamp: timestamp,
		dir:       filepath.Join(root, timestamp),
		mode:      mode,
		dconf:     dc,
		logger:    logger,
		manifest:  Manifest{Timestamp: timestamp},
	}
}

// Init creates the run's backup directory.
func (m *Manager) Init() error {
	if m.mode != ModeWrite {
		return nil
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	return nil
}

// Dir returns the run's backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Timestamp returns the run identifier.
func (m *Manager) Timestamp() string {
	return m.timestamp
}

// Manifest returns a copy of the manifest accumulated so far.
func (m *Manager) Manifest() Manifest {
	return m.manifest
}

// BackupFile copies a file into the backup tree, mirroring its location
// relative to the home directory, and records it in the manifest.
// A nonexistent path returns false without recording anything: the step
// is creating a new artifact with no prior state to protect.
func (m *Manager) BackupFile(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}

	rel := strings.TrimPrefix(path, m.home+string(filepath.Separator))
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	dest := filepath.Join(m.dir, "files", rel)

	switch m.mode {
	case ModeDryRun:
		m.logger.Info().Str("path", path).Msg("would backup file")
		return true
	case ModeDisabled:
		m.logger.Info().Str("path", path).Msg("backups disabled, overwriting without a copy")
		return true
	}

	if err := copyFile(path, dest); err != nil {
		m.logger.Warn().Str("path", path).Err(err).Msg("file backup failed")
		return false
	}

	m.manifest.Files = append(m.manifest.Files, FileRecord{Original: path, Backup: dest})
	return true
}

// BackupConfigKey dumps a configuration subtree and records it. An empty
// dump means there is nothing to back up and returns false.
func (m *Manager) BackupConfigKey(ctx context.Context, keyPath string) bool {
	if m.mode == ModeDisabled {
		m.logger.Info().Str("key", keyPath).Msg("backups disabled, overwriting without a dump")
		return true
	}

	data, err := m.dconf.Dump(ctx, keyPath)
	if err != nil {
		m.logger.Warn().Str("key", keyPath).Err(err).Msg("config dump failed")
		return false
	}
	if data == "" {
		return false
	}

	if m.mode == ModeDryRun {
		m.logger.Info().Str("key", keyPath).Msg("would backup config key")
		return true
	}

	name := strings.ReplaceAll(strings.Trim(keyPath, "/"), "/", "_")
	dest := filepath.Join(m.dir, "dconf", name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		m.logger.Warn().Str("key", keyPath).Err(err).Msg("config backup failed")
		return false
	}
	if err := os.WriteFile(dest, []byte(data), 0o644); err != nil {
		m.logger.Warn().Str("key", keyPath).Err(err).Msg("config backup failed")
		return false
	}

	m.manifest.ConfigKeys = append(m.manifest.ConfigKeys, KeyRecord{Path: keyPath, Backup: dest})
	return true
}

// SaveManifest serializes the manifest once, at the end of the run. It
// must be called even when steps failed so partial progress stays
// restorable.
func (m *Manager) SaveManifest() error {
	if m.mode != ModeWrite || m.saved {
		return nil
	}

	data, err := json.MarshalIndent(m.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	m.saved = true
	return nil
}

// ListBackups returns backup directories containing a manifest, newest first.
func ListBackups(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup root: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			dirs = append(dirs, dir)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	return dirs, nil
}

// RestoreReport summarizes a restore: failures are per-record and never
// halt the rest of the restore.
type RestoreReport struct {
	Timestamp     string
	FilesRestored []string
	FilesMissing  []string
	KeysRestored  []string
	KeysFailed    []string
}

// Clean reports whether every record restored.
func (r RestoreReport) Clean() bool {
	return len(r.FilesMissing) == 0 && len(r.KeysFailed) == 0
}

// Restore loads a manifest and puts every recorded file and configuration
// key back. It is independent of any live run.
func Restore(ctx context.Context, backupDir string, dc *dconf.Client, logger zerolog.Logger) (*RestoreReport, error) {
	manifestPath := filepath.Join(backupDir, ManifestName)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, ErrManifestMissing
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	report := &RestoreReport{Timestamp: manifest.Timestamp}

	for _, record := range manifest.Files {
		if _, err := os.Stat(record.Backup); err != nil {
			logger.Warn().Str("backup", record.Backup).Msg("backup file missing")
			report.FilesMissing = append(report.FilesMissing, record.Original)
			continue
		}
		if err := copyFile(record.Backup, record.Original); err != nil {
			logger.Warn().Str("path", record.Original).Err(err).Msg("file restore failed")
			report.FilesMissing = append(report.FilesMissing, record.Original)
			continue
		}
		report.FilesRestored = append(report.FilesRestored, record.Original)
	}

	for _, record := range manifest.ConfigKeys {
		data, err := os.ReadFile(record.Backup)
		if err != nil {
			logger.Warn().Str("backup", record.Backup).Msg("backup dump missing")
			report.KeysFailed = append(report.KeysFailed, record.Path)
			continue
		}

		// Reset before load so keys written since the backup do not
		// survive the restore as merge artifacts.
		if err := dc.Reset(ctx, record.Path); err != nil {
			logger.Warn().Str("key", record.Path).Err(err).Msg("config reset failed")
		}
		if err := dc.Load(ctx, record.Path, string(data)); err != nil {
			logger.Warn().Str("key", record.Path).Err(err).Msg("config restore failed")
			report.KeysFailed = append(report.KeysFailed, record.Path)
			continue
		}
		report.KeysRestored = append(report.KeysRestored, record.Path)
	}

	return report, nil
}

// copyFile copies src to dst, creating parent directories as needed and
// preserving the source mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// CopyFile is the shared file-copy helper used by install steps.
func CopyFile(src, dst string) error {
	return copyFile(src, dst)
}
