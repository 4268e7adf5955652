package palette

// protected lists hex colors that must never be hue-shifted: desktop
// standard colors, pure neutrals, and the semantic status colors that
// stay constant across palettes.
var protected = map[string]struct{}{
	// GNOME blues
	"#3584e4": {}, "#1c71d8": {}, "#1a5fb4": {}, "#99c1f1": {}, "#62a0ea": {},
	// GNOME greens
	"#33d17a": {}, "#2ec27e": {}, "#26a269": {}, "#57e389": {}, "#8ff0a4": {},
	"#8cd48c": {}, "#1b5e20": {},
	// GNOME yellows
	"#f9f06b": {}, "#f8e45c": {}, "#f6d32d": {}, "#f5c211": {}, "#e5a50a": {},
	// GNOME reds
	"#f66151": {}, "#ed333b": {}, "#e01b24": {}, "#c01c28": {}, "#a51d2d": {},
	// GNOME purples
	"#dc8add": {}, "#c061cb": {}, "#9141ac": {}, "#813d9c": {}, "#613583": {},
	"#e4dfff": {}, "#c8bfff": {}, "#2f2d5e": {}, "#464490": {},
	// Pure neutrals
	"#ffffff": {}, "#f6f5f4": {}, "#deddda": {}, "#c0bfbc": {}, "#9a9996": {},
	"#77767b": {}, "#5e5c64": {}, "#3d3846": {}, "#241f31": {}, "#000000": {},
	// Error (constant across all palettes)
	"#93000a": {}, "#a5000c": {}, "#ffb4ab": {},
	// Success / warning (constant across all palettes)
	"#a8c77a": {}, "#ffc888": {},
}

// Protected reports whether a lowercase hex color is excluded from
// hue-based rewriting.
func Protected(hex string) bool {
	_, ok := protected[hex]
	return ok
}
