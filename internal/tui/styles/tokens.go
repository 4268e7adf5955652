package styles

import (
	"strings"

	"github.com/huectl/huectl/internal/palette"
)

// ThemeTokens defines the semantic color roles the progress view uses.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Border    string
	Accent    string
	Success   string
	Warning   string
	Error     string
}

// Theme bundles a token set with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// DefaultTheme matches the palette the shipped theme assets use.
var DefaultTheme = fromPalette("default", palette.DefaultName)

// Themes lists available TUI themes by name: "default" plus one per
// desktop palette, keyed by the lowercase palette name.
var Themes = buildThemes()

func buildThemes() map[string]Theme {
	themes := map[string]Theme{"default": DefaultTheme}
	for _, name := range palette.Names() {
		key := strings.ToLower(name)
		themes[key] = fromPalette(key, name)
	}
	return themes
}

// fromPalette projects a desktop palette onto the terminal roles.
func fromPalette(themeName, paletteName string) Theme {
	p, err := palette.Get(paletteName)
	if err != nil {
		p, _ = palette.Get(palette.DefaultName)
	}
	return Theme{
		Name: themeName,
		Tokens: ThemeTokens{
			Text:      p.Hex("on_surface"),
			TextMuted: p.Hex("on_surface_var"),
			Border:    p.Hex("outline"),
			Accent:    p.Primary(),
			Success:   p.Hex("success"),
			Warning:   p.Hex("warning"),
			Error:     p.Hex("error"),
		},
	}
}
