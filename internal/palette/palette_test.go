package palette

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"
)

var lowerHex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestRegistryComplete(t *testing.T) {
	names := Names()
	if len(names) != 8 {
		t.Fatalf("got %d palettes, want 8", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}

	for _, name := range names {
		p, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", name, err)
		}
		for _, token := range Tokens {
			hex := p.Hex(token)
			if hex == "" {
				t.Errorf("%s: token %q undefined", name, token)
				continue
			}
			if !lowerHex.MatchString(hex) {
				t.Errorf("%s: token %q = %q is not lowercase hex", name, token, hex)
			}
		}
		if p.Primary() != p.Hex(TokenPrimary) {
			t.Errorf("%s: Primary() disagrees with Hex(primary)", name)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("Chartreuse"); !errors.Is(err, ErrPaletteNotFound) {
		t.Errorf("err = %v, want ErrPaletteNotFound", err)
	}
}

func TestAccentAndFolderNames(t *testing.T) {
	for _, p := range All() {
		if p.AccentName() == "" {
			t.Errorf("%s: empty accent name", p.Name)
		}
		if p.FolderColor() == "" {
			t.Errorf("%s: empty folder color", p.Name)
		}
	}

	purple, err := Get("Purple")
	if err != nil {
		t.Fatal(err)
	}
	if got := purple.FolderColor(); got != "violet" {
		t.Errorf("Purple folder color = %q, want violet", got)
	}
	if got := purple.AccentName(); got != "purple" {
		t.Errorf("Purple accent = %q, want purple", got)
	}
}

func TestProtectedColors(t *testing.T) {
	for _, hex := range []string{"#ffffff", "#000000", "#3584e4", "#ffb4ab", "#a8c77a"} {
		if !Protected(hex) {
			t.Errorf("%s should be protected", hex)
		}
	}
	if Protected("#ffb86c") {
		t.Error("#ffb86c should not be protected")
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "installed-palette.json")
	state := NewState(path)

	if _, err := state.Load(); !errors.Is(err, ErrNoInstalledPalette) {
		t.Fatalf("err = %v, want ErrNoInstalledPalette", err)
	}

	if err := state.Save("Teal"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	name, err := state.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if name != "Teal" {
		t.Errorf("loaded %q, want Teal", name)
	}
}

func TestStateRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed-palette.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewState(path).Load(); err == nil {
		t.Error("expected error for corrupt state file")
	}
}

func TestStateEmptyPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed-palette.json")
	if err := os.WriteFile(path, []byte(`{"palette":""}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewState(path).Load(); !errors.Is(err, ErrNoInstalledPalette) {
		t.Errorf("err = %v, want ErrNoInstalledPalette", err)
	}
}
