// Package palette defines the named color palettes shared by every theme consumer.
package palette

import (
	"errors"
	"sort"
)

// ErrPaletteNotFound is returned when a palette name is not in the registry.
var ErrPaletteNotFound = errors.New("palette not found")

// TokenPrimary is the token whose hue represents the whole palette.
const TokenPrimary = "primary"

// DefaultName is the palette the shipped theme assets are authored in.
const DefaultName = "Orange"

// Tokens is the closed, ordered set of semantic color roles every palette defines.
var Tokens = []string{
	"seed",
	"primary",
	"on_primary",
	"primary_container",
	"on_primary_container",
	"secondary",
	"secondary_container",
	"tertiary",
	"tertiary_container",
	"error",
	"error_container",
	"surface",
	"surface_cont_lowest",
	"surface_cont_low",
	"surface_cont",
	"surface_cont_high",
	"surface_cont_highest",
	"on_surface",
	"on_surface_var",
	"outline",
	"outline_var",
	"success",
	"warning",
}

// Palette is a named, immutable set of semantic color tokens.
type Palette struct {
	Name   string
	colors map[string]string
}

// Hex returns the lowercase hex value of a token ("" for unknown tokens).
func (p Palette) Hex(token string) string {
	return p.colors[token]
}

// Primary returns the hex value of the primary token.
func (p Palette) Primary() string {
	return p.colors[TokenPrimary]
}

// AccentName maps the palette to the desktop accent-color key value.
func (p Palette) AccentName() string {
	if name, ok := accentNames[p.Name]; ok {
		return name
	}
	return "orange"
}

// FolderColor maps the palette to the Papirus folder color name.
func (p Palette) FolderColor() string {
	if name, ok := folderColors[p.Name]; ok {
		return name
	}
	return "orange"
}

// Get looks up a palette by name.
func Get(name string) (Palette, error) {
	colors, ok := registry[name]
	if !ok {
		return Palette{}, ErrPaletteNotFound
	}
	return Palette{Name: name, colors: colors}, nil
}

// Names returns all registered palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered palette, sorted by name.
func All() []Palette {
	names := Names()
	palettes := make([]Palette, 0, len(names))
	for _, name := range names {
		palettes = append(palettes, Palette{Name: name, colors: registry[name]})
	}
	return palettes
}

var accentNames = map[string]string{
	"Orange": "orange",
	"Blue":   "blue",
	"Green":  "green",
	"Purple": "purple",
	"Red":    "red",
	"Teal":   "teal",
	"Pink":   "pink",
	"Yellow": "yellow",
}

var folderColors = map[string]string{
	"Orange": "orange",
	"Blue":   "blue",
	"Green":  "green",
	"Purple": "violet",
	"Red":    "red",
	"Teal":   "teal",
	"Pink":   "pink",
	"Yellow": "yellow",
}
