// Package colormap derives hex substitution tables between two palettes.
package colormap

import (
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/huectl/huectl/internal/palette"
)

// ColorMap maps lowercase hex colors to their lowercase replacements.
// No key maps to itself.
type ColorMap map[string]string

const (
	// hueWindow is the maximum circular hue distance (degrees, inclusive)
	// from the old primary for a color to count as part of the accent family.
	hueWindow = 35.0

	// minSaturation excludes near-neutral colors from hue shifting
	// (strictly greater than).
	minSaturation = 0.05

	// minHueShift is the primary hue delta below which the two palettes
	// share a hue family and no extrapolation happens.
	minHueShift = 0.5
)

var hexPattern = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)

// Build derives the substitution table from the old palette to the new
// one. Beyond direct token diffs, 6-digit hex literals discovered in
// candidateFiles are hue-shifted when they sit close to the old primary
// hue, skipping protected colors and colors the map already introduces.
func Build(old, next palette.Palette, candidateFiles []string) ColorMap {
	mapping := make(ColorMap)

	for _, token := range palette.Tokens {
		oldHex := strings.ToLower(old.Hex(token))
		newHex := strings.ToLower(next.Hex(token))
		if oldHex != "" && newHex != "" && oldHex != newHex {
			mapping[oldHex] = newHex
		}
	}

	oldHue, _, _ := hexToHSL(old.Primary())
	newHue, _, _ := hexToHSL(next.Primary())
	hueShift := newHue - oldHue

	if math.Abs(hueShift) < minHueShift {
		return mapping
	}

	values := make(map[string]struct{}, len(mapping))
	for _, v := range mapping {
		values[v] = struct{}{}
	}

	for _, hex := range scanFiles(candidateFiles) {
		if _, mapped := mapping[hex]; mapped {
			continue
		}
		if palette.Protected(hex) {
			continue
		}
		if _, introduced := values[hex]; introduced {
			continue
		}

		h, s, l := hexToHSL(hex)
		if !accentFamily(h, s, oldHue) {
			continue
		}

		shifted := math.Mod(h+hueShift, 360)
		if shifted < 0 {
			shifted += 360
		}
		newHex := hslToHex(shifted, s, l)
		if newHex != hex {
			mapping[hex] = newHex
		}
	}

	return mapping
}

// scanFiles returns the distinct lowercase 6-digit hex literals found in
// the readable candidate files, in stable order.
func scanFiles(paths []string) []string {
	seen := make(map[string]struct{})
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, match := range hexPattern.FindAllString(string(data), -1) {
			seen[strings.ToLower(match)] = struct{}{}
		}
	}

	hexes := make([]string, 0, len(seen))
	for hex := range seen {
		hexes = append(hexes, hex)
	}
	sort.Strings(hexes)
	return hexes
}

// accentFamily reports whether a color takes part in the hue shift: at
// most hueWindow degrees from the old primary (inclusive) and strictly
// more saturated than minSaturation.
func accentFamily(h, s, primaryHue float64) bool {
	return hueDistance(h, primaryHue) <= hueWindow && s > minSaturation
}

// hueDistance computes circular distance between two hues in degrees.
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func hexToHSL(hex string) (h, s, l float64) {
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return 0, 0, 0
	}
	return c.Hsl()
}

func hslToHex(h, s, l float64) string {
	return colorful.Hsl(h, s, l).Clamped().Hex()
}
