package backup

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/huectl/huectl/internal/dconf"
)

// fakeExec stands in for the dconf binary. Dumps are served from the
// dumps map keyed by subtree path; every invocation is recorded.
type fakeExec struct {
	calls [][]string
	input []string
	dumps map[string]string
	fail  map[string]bool
}

func (f *fakeExec) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return f.ExecInput(ctx, "", name, args...)
}

func (f *fakeExec) ExecInput(ctx context.Context, input string, name string, args ...string) ([]byte, []byte, error) {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)
	f.input = append(f.input, input)

	key := strings.Join(call, " ")
	if f.fail[key] {
		return nil, []byte("simulated failure"), errors.New("exit status 1")
	}
	if len(args) >= 2 && args[0] == "dump" {
		return []byte(f.dumps[args[1]]), nil, nil
	}
	return nil, nil, nil
}

func testManager(t *testing.T, mode Mode) (*Manager, *fakeExec, string) {
	t.Helper()
	home := t.TempDir()
	root := filepath.Join(home, ".local", "share", "huectl", "backups")
	fe := &fakeExec{dumps: map[string]string{}, fail: map[string]bool{}}
	m := NewManager(root, home, dconf.NewClient(fe), mode, zerolog.Nop())
	if err := m.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return m, fe, home
}

func TestBackupFileMirrorsHomeLayout(t *testing.T) {
	m, _, home := testManager(t, ModeWrite)

	original := filepath.Join(home, ".config", "gtk-4.0", "gtk.css")
	if err := os.MkdirAll(filepath.Dir(original), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(original, []byte("old css"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !m.BackupFile(original) {
		t.Fatal("BackupFile returned false for an existing file")
	}

	want := filepath.Join(m.Dir(), "files", ".config", "gtk-4.0", "gtk.css")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("backup copy missing: %v", err)
	}
	if string(data) != "old css" {
		t.Errorf("backup content = %q, want %q", data, "old css")
	}

	manifest := m.Manifest()
	if len(manifest.Files) != 1 {
		t.Fatalf("manifest has %d files, want 1", len(manifest.Files))
	}
	if manifest.Files[0].Original != original || manifest.Files[0].Backup != want {
		t.Errorf("manifest record = %+v", manifest.Files[0])
	}
}

func TestBackupFileNonexistent(t *testing.T) {
	m, _, home := testManager(t, ModeWrite)

	if m.BackupFile(filepath.Join(home, "nope.txt")) {
		t.Error("BackupFile should return false for a missing file")
	}
	if len(m.Manifest().Files) != 0 {
		t.Error("missing file must not be recorded")
	}
}

func TestBackupFileDryRun(t *testing.T) {
	m, _, home := testManager(t, ModeDryRun)

	original := filepath.Join(home, "wallpaper.png")
	if err := os.WriteFile(original, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !m.BackupFile(original) {
		t.Error("dry-run BackupFile should report true")
	}
	if len(m.Manifest().Files) != 0 {
		t.Error("dry run must not record files")
	}
	if _, err := os.Stat(m.Dir()); !os.IsNotExist(err) {
		t.Error("dry run must not create the backup directory")
	}
}

func TestBackupFileDisabledMode(t *testing.T) {
	home := t.TempDir()
	fe := &fakeExec{dumps: map[string]string{}, fail: map[string]bool{}}
	var logs bytes.Buffer
	m := NewManager(filepath.Join(home, "backups"), home, dconf.NewClient(fe), ModeDisabled, zerolog.New(&logs))
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}

	original := filepath.Join(home, "wallpaper.png")
	if err := os.WriteFile(original, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !m.BackupFile(original) {
		t.Error("disabled BackupFile should report true")
	}
	if !m.BackupConfigKey(context.Background(), "/org/gnome/shell/") {
		t.Error("disabled BackupConfigKey should report true")
	}
	if len(m.Manifest().Files) != 0 || len(m.Manifest().ConfigKeys) != 0 {
		t.Error("disabled mode must not record anything")
	}
	if err := m.SaveManifest(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(m.Dir()); !os.IsNotExist(err) {
		t.Error("disabled mode must not create the backup directory")
	}
	if len(fe.calls) != 0 {
		t.Errorf("disabled mode must not dump dconf, calls: %v", fe.calls)
	}

	// The run mutates for real, so the log must say so rather than
	// pretend a dry run.
	if strings.Contains(logs.String(), "would backup") {
		t.Errorf("disabled mode logged dry-run wording: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "backups disabled") {
		t.Errorf("disabled mode did not announce itself: %s", logs.String())
	}
}

func TestBackupConfigKey(t *testing.T) {
	m, fe, _ := testManager(t, ModeWrite)
	fe.dumps["/org/gnome/desktop/interface/"] = "[/]\naccent-color='orange'\n"

	if !m.BackupConfigKey(context.Background(), "/org/gnome/desktop/interface/") {
		t.Fatal("BackupConfigKey returned false")
	}

	manifest := m.Manifest()
	if len(manifest.ConfigKeys) != 1 {
		t.Fatalf("manifest has %d keys, want 1", len(manifest.ConfigKeys))
	}
	record := manifest.ConfigKeys[0]
	if record.Path != "/org/gnome/desktop/interface/" {
		t.Errorf("record path = %q", record.Path)
	}
	if filepath.Base(record.Backup) != "org_gnome_desktop_interface" {
		t.Errorf("dump file name = %q", filepath.Base(record.Backup))
	}

	data, err := os.ReadFile(record.Backup)
	if err != nil {
		t.Fatalf("dump file missing: %v", err)
	}
	if !strings.Contains(string(data), "accent-color='orange'") {
		t.Errorf("dump content = %q", data)
	}
}

func TestBackupConfigKeyEmptySubtree(t *testing.T) {
	m, _, _ := testManager(t, ModeWrite)

	if m.BackupConfigKey(context.Background(), "/org/gnome/shell/extensions/empty/") {
		t.Error("empty dump should not be backed up")
	}
	if len(m.Manifest().ConfigKeys) != 0 {
		t.Error("empty dump must not be recorded")
	}
}

func TestSaveManifestOnce(t *testing.T) {
	m, _, home := testManager(t, ModeWrite)

	original := filepath.Join(home, "a.txt")
	if err := os.WriteFile(original, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.BackupFile(original)

	if err := m.SaveManifest(); err != nil {
		t.Fatalf("SaveManifest failed: %v", err)
	}
	if err := m.SaveManifest(); err != nil {
		t.Fatalf("second SaveManifest failed: %v", err)
	}

	loaded, err := LoadManifest(filepath.Join(m.Dir(), ManifestName))
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if loaded.Timestamp != m.Timestamp() {
		t.Errorf("timestamp = %q, want %q", loaded.Timestamp, m.Timestamp())
	}
	if len(loaded.Files) != 1 {
		t.Errorf("loaded %d files, want 1", len(loaded.Files))
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	root := t.TempDir()

	for _, name := range []string{"20260101_120000", "20260301_120000", "20260201_120000"} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Directories without a manifest are not backups.
	if err := os.MkdirAll(filepath.Join(root, "20260401_120000"), 0o755); err != nil {
		t.Fatal(err)
	}

	dirs, err := ListBackups(root)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	want := []string{"20260301_120000", "20260201_120000", "20260101_120000"}
	if len(dirs) != len(want) {
		t.Fatalf("got %d backups, want %d: %v", len(dirs), len(want), dirs)
	}
	for i, name := range want {
		if filepath.Base(dirs[i]) != name {
			t.Errorf("dirs[%d] = %s, want %s", i, filepath.Base(dirs[i]), name)
		}
	}
}

func TestListBackupsMissingRoot(t *testing.T) {
	dirs, err := ListBackups(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if dirs != nil {
		t.Errorf("got %v, want nil", dirs)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	m, fe, home := testManager(t, ModeWrite)
	fe.dumps["/org/gnome/desktop/interface/"] = "[/]\naccent-color='orange'\n"

	original := filepath.Join(home, ".config", "gtk-4.0", "gtk.css")
	if err := os.MkdirAll(filepath.Dir(original), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(original, []byte("before"), 0o644); err != nil {
		t.Fatal(err)
	}

	m.BackupFile(original)
	m.BackupConfigKey(context.Background(), "/org/gnome/desktop/interface/")
	if err := m.SaveManifest(); err != nil {
		t.Fatal(err)
	}

	// Simulate the install overwriting the file.
	if err := os.WriteFile(original, []byte("after"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Restore(context.Background(), m.Dir(), dconf.NewClient(fe), zerolog.Nop())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if !report.Clean() {
		t.Errorf("report not clean: %+v", report)
	}

	data, err := os.ReadFile(original)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "before" {
		t.Errorf("restored content = %q, want %q", data, "before")
	}

	var sawReset, sawLoad bool
	for i, call := range fe.calls {
		if len(call) >= 2 && call[0] == "dconf" {
			switch call[1] {
			case "reset":
				sawReset = true
			case "load":
				sawLoad = true
				if !strings.Contains(fe.input[i], "accent-color='orange'") {
					t.Errorf("load input = %q", fe.input[i])
				}
			}
		}
	}
	if !sawReset || !sawLoad {
		t.Errorf("expected reset+load, calls: %v", fe.calls)
	}
}

func TestRestoreMissingManifest(t *testing.T) {
	_, err := Restore(context.Background(), t.TempDir(), dconf.NewClient(&fakeExec{}), zerolog.Nop())
	if !errors.Is(err, ErrManifestMissing) {
		t.Errorf("err = %v, want ErrManifestMissing", err)
	}
}

func TestRestoreReportsFailures(t *testing.T) {
	m, fe, home := testManager(t, ModeWrite)
	fe.dumps["/org/gnome/shell/"] = "[/]\nx=1\n"

	original := filepath.Join(home, "gone.txt")
	if err := os.WriteFile(original, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.BackupFile(original)
	m.BackupConfigKey(context.Background(), "/org/gnome/shell/")
	if err := m.SaveManifest(); err != nil {
		t.Fatal(err)
	}

	// Wipe the backup copy and make the key load refuse.
	if err := os.Remove(filepath.Join(m.Dir(), "files", "gone.txt")); err != nil {
		t.Fatal(err)
	}
	fe.fail["dconf load /org/gnome/shell/"] = true

	report, err := Restore(context.Background(), m.Dir(), dconf.NewClient(fe), zerolog.Nop())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if report.Clean() {
		t.Error("report should not be clean")
	}
	if len(report.FilesMissing) != 1 || report.FilesMissing[0] != original {
		t.Errorf("FilesMissing = %v", report.FilesMissing)
	}
	if len(report.KeysFailed) != 1 || report.KeysFailed[0] != "/org/gnome/shell/" {
		t.Errorf("KeysFailed = %v", report.KeysFailed)
	}
}
