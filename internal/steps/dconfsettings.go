package steps

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/sysinfo"
)

// dconfSettingsStep applies the full desktop configuration: interface,
// background, night light, mutter and per-extension settings.
type dconfSettingsStep struct {
	meta
}

func newDconfSettingsStep(deps *Deps) Step {
	return &dconfSettingsStep{meta{number: 12, name: "dconf Settings", deps: deps}}
}

func (s *dconfSettingsStep) IsInstalled(_ *sysinfo.Info) bool {
	val, err := s.deps.Dconf.Read(context.Background(), "/org/gnome/desktop/interface/accent-color")
	return err == nil && val != ""
}

// backedUpPaths are the dconf subtrees snapshot before any write.
var backedUpPaths = []string{
	"/org/gnome/desktop/",
	"/org/gnome/shell/",
	"/org/gnome/mutter/",
	"/org/gnome/settings-daemon/",
}

func (s *dconfSettingsStep) desktopSettings(home string) map[string]string {
	wallpaper := fmt.Sprintf("'file://%s/.local/share/backgrounds/lockscreen.png'", home)
	return map[string]string{
		"/org/gnome/desktop/interface/accent-color":              "'orange'",
		"/org/gnome/desktop/interface/color-scheme":              "'prefer-dark'",
		"/org/gnome/desktop/interface/cursor-theme":              "'Bibata-Modern-Classic'",
		"/org/gnome/desktop/interface/icon-theme":                "'Papirus-Dark'",
		"/org/gnome/desktop/interface/gtk-theme":                 "'Marble-red-dark'",
		"/org/gnome/desktop/interface/font-name":                 "'Inter 11'",
		"/org/gnome/desktop/interface/document-font-name":        "'Noto Serif 11'",
		"/org/gnome/desktop/interface/show-battery-percentage":   "true",
		"/org/gnome/desktop/wm/preferences/titlebar-font":        "'Inter Semi-Bold 11'",
		"/org/gnome/desktop/background/picture-uri":              wallpaper,
		"/org/gnome/desktop/background/picture-uri-dark":         wallpaper,
		"/org/gnome/desktop/background/picture-options":          "'zoom'",
		"/org/gnome/desktop/background/primary-color":            "'#000000000000'",
		"/org/gnome/desktop/background/color-shading-type":       "'solid'",
		"/org/gnome/desktop/screensaver/picture-uri":             wallpaper,
		"/org/gnome/desktop/screensaver/picture-options":         "'zoom'",
		"/org/gnome/desktop/screensaver/primary-color":           "'#000000000000'",
		"/org/gnome/desktop/screensaver/color-shading-type":      "'solid'",
		"/org/gnome/settings-daemon/plugins/color/night-light-enabled":            "true",
		"/org/gnome/settings-daemon/plugins/color/night-light-schedule-automatic": "false",
		"/org/gnome/settings-daemon/plugins/color/night-light-temperature":        "uint32 3200",
		"/org/gnome/mutter/edge-tiling":                          "true",
		"/org/gnome/desktop/peripherals/mouse/accel-profile":     "'flat'",
		"/org/gnome/desktop/sound/theme-name":                    "'freedesktop'",
		"/org/gnome/desktop/a11y/interface/high-contrast":        "false",
	}
}

func (s *dconfSettingsStep) extensionSettings(home string) map[string]string {
	return map[string]string{
		"/org/gnome/shell/extensions/user-theme/name": "'Material-You-Orange'",

		"/org/gnome/shell/extensions/Logo-menu/hide-forcequit":          "true",
		"/org/gnome/shell/extensions/Logo-menu/hide-icon-shadow":        "false",
		"/org/gnome/shell/extensions/Logo-menu/menu-button-icon-image":  "21",
		"/org/gnome/shell/extensions/Logo-menu/menu-button-icon-size":   "19",
		"/org/gnome/shell/extensions/Logo-menu/menu-button-terminal":    "'ptyxis --new-window'",
		"/org/gnome/shell/extensions/Logo-menu/show-activities-button":  "true",
		"/org/gnome/shell/extensions/Logo-menu/symbolic-icon":           "true",

		"/org/gnome/shell/extensions/blur-my-shell/settings-version":                 "2",
		"/org/gnome/shell/extensions/blur-my-shell/appfolder/brightness":             "0.6",
		"/org/gnome/shell/extensions/blur-my-shell/appfolder/sigma":                  "30",
		"/org/gnome/shell/extensions/blur-my-shell/dash-to-dock/blur":                "true",
		"/org/gnome/shell/extensions/blur-my-shell/dash-to-dock/brightness":          "0.6",
		"/org/gnome/shell/extensions/blur-my-shell/dash-to-dock/sigma":               "30",
		"/org/gnome/shell/extensions/blur-my-shell/dash-to-dock/static-blur":         "true",
		"/org/gnome/shell/extensions/blur-my-shell/dash-to-dock/style-dash-to-dock":  "0",
		"/org/gnome/shell/extensions/blur-my-shell/overview/blur":                    "true",
		"/org/gnome/shell/extensions/blur-my-shell/panel/blur":                       "false",
		"/org/gnome/shell/extensions/blur-my-shell/panel/brightness":                 "0.6",
		"/org/gnome/shell/extensions/blur-my-shell/panel/override-background":        "true",
		"/org/gnome/shell/extensions/blur-my-shell/panel/sigma":                      "30",
		"/org/gnome/shell/extensions/blur-my-shell/panel/static-blur":                "false",
		"/org/gnome/shell/extensions/blur-my-shell/panel/style-panel":                "0",

		"/org/gnome/shell/extensions/burn-my-windows/active-profile": fmt.Sprintf("'%s/.config/burn-my-windows/profiles/material-you-orange.conf'", home),

		"/org/gnome/shell/extensions/caffeine/user-enabled": "true",

		"/org/gnome/shell/extensions/ding/show-home":  "false",
		"/org/gnome/shell/extensions/ding/show-trash": "true",
		"/org/gnome/shell/extensions/ding/icon-size":  "'standard'",

		"/org/gnome/shell/extensions/ncom/github/hermes83/compiz-alike-magic-lamp-effect/duration": "300.0",
		"/org/gnome/shell/extensions/ncom/github/hermes83/compiz-alike-magic-lamp-effect/x-tiles":  "15.0",
		"/org/gnome/shell/extensions/ncom/github/hermes83/compiz-alike-magic-lamp-effect/y-tiles":  "20.0",

		"/org/gnome/shell/extensions/appindicator/legacy-tray-enabled": "true",
	}
}

func (s *dconfSettingsStep) Install(ctx context.Context, _ *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	if dryRun {
		return s.success("would apply all dconf settings"), nil
	}

	for _, path := range backedUpPaths {
		bk.BackupConfigKey(ctx, path)
	}

	all := s.desktopSettings(s.deps.Home)
	for key, value := range s.extensionSettings(s.deps.Home) {
		all[key] = value
	}

	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var failed []string
	for _, key := range keys {
		if err := s.deps.Dconf.Write(ctx, key, all[key]); err != nil {
			s.deps.Logger.Warn().Err(err).Str("key", key).Msg("dconf write failed")
			failed = append(failed, key[strings.LastIndex(key, "/")+1:])
		}
	}

	if len(failed) > 0 {
		if len(failed) > 5 {
			failed = failed[:5]
		}
		return s.failed("failed keys: %s", strings.Join(failed, ", ")), nil
	}
	return s.success("applied %d settings", len(all)), nil
}
