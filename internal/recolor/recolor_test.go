package recolor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huectl/huectl/internal/colormap"
)

func writeThemeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gtk.css")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write theme file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestRecolorFilePreservesCase(t *testing.T) {
	path := writeThemeFile(t, "a { color: #FFB86C; }\nb { color: #ffb86c; }\n")
	m := colormap.ColorMap{"#ffb86c": "#82b1ff"}

	changed, err := RecolorFile(path, m)
	if err != nil {
		t.Fatalf("RecolorFile failed: %v", err)
	}
	if !changed {
		t.Fatal("expected file to change")
	}

	got := readFile(t, path)
	want := "a { color: #82B1FF; }\nb { color: #82b1ff; }\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecolorFileIsIdempotent(t *testing.T) {
	path := writeThemeFile(t, "color: #ffb86c;")
	m := colormap.ColorMap{"#ffb86c": "#82b1ff"}

	if changed, err := RecolorFile(path, m); err != nil || !changed {
		t.Fatalf("first pass: changed=%v err=%v", changed, err)
	}
	changed, err := RecolorFile(path, m)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if changed {
		t.Error("second pass should be a no-op")
	}
	if got := readFile(t, path); got != "color: #82b1ff;" {
		t.Errorf("content drifted on second pass: %q", got)
	}
}

func TestRecolorFileNoMatches(t *testing.T) {
	path := writeThemeFile(t, "color: #123456;")

	changed, err := RecolorFile(path, colormap.ColorMap{"#ffb86c": "#82b1ff"})
	if err != nil {
		t.Fatalf("RecolorFile failed: %v", err)
	}
	if changed {
		t.Error("file without matches should not change")
	}
	if got := readFile(t, path); got != "color: #123456;" {
		t.Errorf("content changed: %q", got)
	}
}

func TestRecolorFileEmptyMap(t *testing.T) {
	path := writeThemeFile(t, "color: #ffb86c;")

	changed, err := RecolorFile(path, colormap.ColorMap{})
	if err != nil {
		t.Fatalf("RecolorFile failed: %v", err)
	}
	if changed {
		t.Error("empty map should be a no-op")
	}
}

func TestRecolorFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.css")

	if _, err := RecolorFile(path, colormap.ColorMap{"#ffb86c": "#82b1ff"}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecolorFilePreservesMode(t *testing.T) {
	path := writeThemeFile(t, "color: #ffb86c;")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}

	if _, err := RecolorFile(path, colormap.ColorMap{"#ffb86c": "#82b1ff"}); err != nil {
		t.Fatalf("RecolorFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("mode = %v, want 0600", got)
	}
}
