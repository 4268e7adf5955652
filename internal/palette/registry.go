package palette

// registry holds the static palette definitions. Every entry defines the
// full token set; values are lowercase 6-digit hex.
var registry = map[string]map[string]string{
	"Orange": {
		"seed":                 "#ffb86c",
		"primary":              "#ffb86c",
		"on_primary":           "#1a1110",
		"primary_container":    "#5c3a1a",
		"on_primary_container": "#ffdcbe",
		"secondary":            "#e4bfa8",
		"secondary_container":  "#3d2e20",
		"tertiary":             "#b2dfdb",
		"tertiary_container":   "#1e3533",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#1a1110",
		"surface_cont_lowest":  "#140e0c",
		"surface_cont_low":     "#1e1514",
		"surface_cont":         "#231918",
		"surface_cont_high":    "#2d2220",
		"surface_cont_highest": "#3d312e",
		"on_surface":           "#efe0db",
		"on_surface_var":       "#d5c4bc",
		"outline":              "#9e8e86",
		"outline_var":          "#51443e",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
	"Blue": {
		"seed":                 "#82b1ff",
		"primary":              "#82b1ff",
		"on_primary":           "#0d1a2e",
		"primary_container":    "#1a3a5c",
		"on_primary_container": "#c4dcff",
		"secondary":            "#a8c4e4",
		"secondary_container":  "#20303d",
		"tertiary":             "#d4bfdb",
		"tertiary_container":   "#331e35",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#101418",
		"surface_cont_lowest":  "#0b0f12",
		"surface_cont_low":     "#141a1e",
		"surface_cont":         "#181e23",
		"surface_cont_high":    "#20282d",
		"surface_cont_highest": "#2e373d",
		"on_surface":           "#dbe3ef",
		"on_surface_var":       "#bcc6d5",
		"outline":              "#86919e",
		"outline_var":          "#3e4851",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
	"Green": {
		"seed":                 "#a8c77a",
		"primary":              "#a8c77a",
		"on_primary":           "#142010",
		"primary_container":    "#2a3d1a",
		"on_primary_container": "#d0e8b0",
		"secondary":            "#bcc8a8",
		"secondary_container":  "#2d3520",
		"tertiary":             "#a8c4c0",
		"tertiary_container":   "#1e3330",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#121410",
		"surface_cont_lowest":  "#0d0f0b",
		"surface_cont_low":     "#161a14",
		"surface_cont":         "#1a1e18",
		"surface_cont_high":    "#232820",
		"surface_cont_highest": "#31382e",
		"on_surface":           "#e0e8db",
		"on_surface_var":       "#c4ccbc",
		"outline":              "#8e9686",
		"outline_var":          "#444e3e",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
	"Purple": {
		"seed":                 "#ce93d8",
		"primary":              "#ce93d8",
		"on_primary":           "#201025",
		"primary_container":    "#3d1a4a",
		"on_primary_container": "#ecc4f2",
		"secondary":            "#d4b8d8",
		"secondary_container":  "#352a38",
		"tertiary":             "#c8c0a8",
		"tertiary_container":   "#33301e",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#161214",
		"surface_cont_lowest":  "#100d0f",
		"surface_cont_low":     "#1a1618",
		"surface_cont":         "#1e1a1d",
		"surface_cont_high":    "#282325",
		"surface_cont_highest": "#383234",
		"on_surface":           "#ece0ee",
		"on_surface_var":       "#d2c4d4",
		"outline":              "#9c8e9e",
		"outline_var":          "#4e424f",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
	"Red": {
		"seed":                 "#ff897d",
		"primary":              "#ff897d",
		"on_primary":           "#2e0e0a",
		"primary_container":    "#5c1a1a",
		"on_primary_container": "#ffc4be",
		"secondary":            "#e4b8a8",
		"secondary_container":  "#3d2820",
		"tertiary":             "#b2c8c4",
		"tertiary_container":   "#1e3330",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#1a1010",
		"surface_cont_lowest":  "#140c0c",
		"surface_cont_low":     "#1e1414",
		"surface_cont":         "#231818",
		"surface_cont_high":    "#2d2020",
		"surface_cont_highest": "#3d302e",
		"on_surface":           "#efe0db",
		"on_surface_var":       "#d5c0bc",
		"outline":              "#9e8686",
		"outline_var":          "#51403e",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
	"Teal": {
		"seed":                 "#80cbc4",
		"primary":              "#80cbc4",
		"on_primary":           "#0a2420",
		"primary_container":    "#1a3d3a",
		"on_primary_container": "#b8e8e4",
		"secondary":            "#a8c8c4",
		"secondary_container":  "#203533",
		"tertiary":             "#c0b8d4",
		"tertiary_container":   "#2a2638",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#101614",
		"surface_cont_lowest":  "#0b100f",
		"surface_cont_low":     "#141a18",
		"surface_cont":         "#181e1d",
		"surface_cont_high":    "#202826",
		"surface_cont_highest": "#2e3836",
		"on_surface":           "#dbe8e6",
		"on_surface_var":       "#bcccc8",
		"outline":              "#869694",
		"outline_var":          "#3e4e4b",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
	"Pink": {
		"seed":                 "#f48fb1",
		"primary":              "#f48fb1",
		"on_primary":           "#2e0e1a",
		"primary_container":    "#5c1a3a",
		"on_primary_container": "#ffc4d8",
		"secondary":            "#e4b0c0",
		"secondary_container":  "#3d2030",
		"tertiary":             "#b2c8a8",
		"tertiary_container":   "#1e3320",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#1a1014",
		"surface_cont_lowest":  "#140c10",
		"surface_cont_low":     "#1e1418",
		"surface_cont":         "#23181d",
		"surface_cont_high":    "#2d2025",
		"surface_cont_highest": "#3d2e34",
		"on_surface":           "#efe0e6",
		"on_surface_var":       "#d5c0ca",
		"outline":              "#9e868e",
		"outline_var":          "#51404a",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
	"Yellow": {
		"seed":                 "#fff176",
		"primary":              "#fff176",
		"on_primary":           "#2e2a0a",
		"primary_container":    "#4a4a1a",
		"on_primary_container": "#fff8b8",
		"secondary":            "#e4dca8",
		"secondary_container":  "#3d3820",
		"tertiary":             "#b8c8d4",
		"tertiary_container":   "#202a33",
		"error":                "#ffb4ab",
		"error_container":      "#93000a",
		"surface":              "#181610",
		"surface_cont_lowest":  "#12110b",
		"surface_cont_low":     "#1c1a14",
		"surface_cont":         "#201e18",
		"surface_cont_high":    "#2a2820",
		"surface_cont_highest": "#3a382e",
		"on_surface":           "#efe8db",
		"on_surface_var":       "#d5d0bc",
		"outline":              "#9e9886",
		"outline_var":          "#514c3e",
		"success":              "#a8c77a",
		"warning":              "#ffc888",
	},
}
