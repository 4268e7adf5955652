package styles

import (
	"strings"
	"testing"

	"github.com/huectl/huectl/internal/palette"
)

func TestThemesCoverEveryPalette(t *testing.T) {
	if _, ok := Themes["default"]; !ok {
		t.Fatal("default theme missing")
	}
	for _, name := range []string{"orange", "blue", "green", "purple", "red", "teal", "pink", "yellow"} {
		theme, ok := Themes[name]
		if !ok {
			t.Errorf("theme %q missing", name)
			continue
		}
		if theme.Name != name {
			t.Errorf("theme %q carries name %q", name, theme.Name)
		}
		if theme.Tokens.Accent == "" || theme.Tokens.Text == "" {
			t.Errorf("theme %q has empty tokens: %+v", name, theme.Tokens)
		}
	}
}

func TestDefaultThemeTracksDefaultPalette(t *testing.T) {
	p, err := palette.Get(palette.DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	if DefaultTheme.Tokens.Accent != p.Primary() {
		t.Errorf("default accent = %q, want %q", DefaultTheme.Tokens.Accent, p.Primary())
	}
}

func TestBuildStylesRendersTokens(t *testing.T) {
	s := DefaultStyles()
	if s.Theme.Name != "default" {
		t.Errorf("theme name = %q", s.Theme.Name)
	}
	if got := s.Title.Render("huectl"); !strings.Contains(got, "huectl") {
		t.Errorf("rendered title %q lost its text", got)
	}
}
