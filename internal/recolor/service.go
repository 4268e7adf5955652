package recolor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/huectl/huectl/internal/colormap"
	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/palette"
)

// Service errors.
var (
	ErrSamePalette = errors.New("palette is already installed")
)

// Service performs live recoloring of an installed theme. The operation
// is best-effort and deliberately not manifest-tracked: a remap is cheap
// to re-derive, so it has no recorded rollback path.
type Service struct {
	Home   string
	State  *palette.State
	Dconf  *dconf.Client
	Exec   execx.Executor
	Logger zerolog.Logger
}

// Targets returns the files an installed theme may have written, limited
// to those that exist right now.
func (s *Service) Targets() []string {
	candidates := []string{
		filepath.Join(s.Home, ".themes", "Material-You-Orange", "gnome-shell", "gnome-shell.css"),
		filepath.Join(s.Home, ".config", "gtk-4.0", "gtk.css"),
		filepath.Join(s.Home, ".config", "gtk-3.0", "gtk.css"),
		filepath.Join(s.Home, ".local", "share", "org.gnome.Ptyxis", "palettes", "material-you-orange.palette"),
		filepath.Join(s.Home, ".config", "fastfetch", "config.jsonc"),
		filepath.Join(s.Home, ".config", "burn-my-windows", "profiles", "material-you-orange.conf"),
	}
	candidates = append(candidates, s.firefoxTargets()...)

	existing := make([]string, 0, len(candidates))
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	return existing
}

// Apply remaps every installed theme file from the recorded palette to
// the named one, refreshes desktop state, and records the new palette.
// Returns the number of files changed.
func (s *Service) Apply(ctx context.Context, newName string) (int, error) {
	oldName, err := s.State.Load()
	if err != nil {
		return 0, err
	}
	if oldName == newName {
		return 0, ErrSamePalette
	}

	oldPalette, err := palette.Get(oldName)
	if err != nil {
		return 0, fmt.Errorf("installed palette %q: %w", oldName, err)
	}
	newPalette, err := palette.Get(newName)
	if err != nil {
		return 0, fmt.Errorf("requested palette %q: %w", newName, err)
	}

	targets := s.Targets()
	mapping := colormap.Build(oldPalette, newPalette, targets)

	s.Logger.Debug().
		Str("from", oldName).
		Str("to", newName).
		Int("targets", len(targets)).
		Int("mappings", len(mapping)).
		Msg("recolor starting")

	changed := 0
	for _, path := range targets {
		ok, err := RecolorFile(path, mapping)
		if err != nil {
			s.Logger.Warn().Str("path", path).Err(err).Msg("recolor skipped file")
			continue
		}
		if ok {
			changed++
		}
	}

	s.refreshDesktop(ctx, newPalette)
	s.relinkPapirusFolders(ctx, newPalette)
	s.touchFlatpakLinks()

	if err := s.State.Save(newName); err != nil {
		return changed, err
	}
	return changed, nil
}

// refreshDesktop updates the accent color and toggles theme keys so the
// shell, GTK apps, and the terminal pick up the rewritten files.
func (s *Service) refreshDesktop(ctx context.Context, p palette.Palette) {
	if err := s.Dconf.Write(ctx, "/org/gnome/desktop/interface/accent-color", fmt.Sprintf("'%s'", p.AccentName())); err != nil {
		s.Logger.Warn().Err(err).Msg("accent-color update failed")
	}

	// Shell theme reload: toggle user-theme off and back on.
	s.toggleKey(ctx, "/org/gnome/shell/extensions/user-theme/name", "'Material-You-Orange'", 400*time.Millisecond)

	// GTK CSS reload: bounce gtk-theme through Adwaita.
	if err := s.Dconf.Write(ctx, "/org/gnome/desktop/interface/gtk-theme", "'Adwaita'"); err == nil {
		time.Sleep(300 * time.Millisecond)
	}
	if err := s.Dconf.Write(ctx, "/org/gnome/desktop/interface/gtk-theme", "'Marble-red-dark'"); err != nil {
		s.Logger.Warn().Err(err).Msg("gtk-theme reload failed")
	}

	s.reloadPtyxisProfiles(ctx)
}

func (s *Service) toggleKey(ctx context.Context, key, value string, delay time.Duration) {
	if err := s.Dconf.Write(ctx, key, "''"); err != nil {
		s.Logger.Warn().Str("key", key).Err(err).Msg("toggle off failed")
		return
	}
	time.Sleep(delay)
	if err := s.Dconf.Write(ctx, key, value); err != nil {
		s.Logger.Warn().Str("key", key).Err(err).Msg("toggle on failed")
	}
}

// reloadPtyxisProfiles bounces each terminal profile's palette so open
// terminals re-read the rewritten palette file.
func (s *Service) reloadPtyxisProfiles(ctx context.Context) {
	raw, err := s.Dconf.Read(ctx, "/org/gnome/Ptyxis/profile-uuids")
	if err != nil || raw == "" {
		return
	}

	raw = strings.Trim(raw, "[]")
	for _, uid := range strings.Split(strings.ReplaceAll(raw, "'", ""), ",") {
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		key := fmt.Sprintf("/org/gnome/Ptyxis/Profiles/%s/palette", uid)
		s.toggleKey(ctx, key, "'material-you-orange'", 200*time.Millisecond)
	}
}

// relinkPapirusFolders swaps folder icon symlinks to the new accent color.
func (s *Service) relinkPapirusFolders(ctx context.Context, p palette.Palette) {
	newColor := p.FolderColor()
	iconsBase := filepath.Join(s.Home, ".local", "share", "icons", "Papirus-Dark")
	if _, err := os.Stat(iconsBase); err != nil {
		return
	}

	sizeDirs, err := os.ReadDir(iconsBase)
	if err != nil {
		return
	}

	for _, sizeDir := range sizeDirs {
		places := filepath.Join(iconsBase, sizeDir.Name(), "places")
		entries, err := os.ReadDir(places)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			link := filepath.Join(places, entry.Name())
			target, err := os.Readlink(link)
			if err != nil {
				continue
			}
			for _, color := range folderColorNames() {
				oldPrefix := "folder-" + color
				if !strings.HasPrefix(target, oldPrefix) {
					continue
				}
				newTarget := "folder-" + newColor + target[len(oldPrefix):]
				if _, err := os.Lstat(filepath.Join(places, newTarget)); err == nil {
					if err := os.Remove(link); err == nil {
						_ = os.Symlink(newTarget, link)
					}
				}
				break
			}
		}
	}

	if !execx.Ok(ctx, s.Exec, "gtk-update-icon-cache", "-f", iconsBase) {
		s.Logger.Debug().Msg("icon cache refresh failed")
	}
}

func folderColorNames() []string {
	names := make([]string, 0, len(palette.Names()))
	for _, name := range palette.Names() {
		p, err := palette.Get(name)
		if err != nil {
			continue
		}
		names = append(names, p.FolderColor())
	}
	return names
}

// touchFlatpakLinks bumps mtimes on sandboxed apps' gtk.css symlink
// targets so they notice the rewrite.
func (s *Service) touchFlatpakLinks() {
	base := filepath.Join(s.Home, ".var", "app")
	apps, err := os.ReadDir(base)
	if err != nil {
		return
	}

	now := time.Now()
	for _, app := range apps {
		for _, version := range []string{"gtk-4.0", "gtk-3.0"} {
			link := filepath.Join(base, app.Name(), "config", version, "gtk.css")
			if info, err := os.Lstat(link); err != nil || info.Mode()&os.ModeSymlink == 0 {
				continue
			}
			_ = os.Chtimes(link, now, now)
		}
	}
}

// firefoxTargets discovers userChrome/userContent files in native and
// sandboxed browser profiles.
func (s *Service) firefoxTargets() []string {
	var targets []string
	bases := []string{
		filepath.Join(s.Home, ".var", "app", "org.mozilla.firefox", "config", "mozilla", "firefox"),
		filepath.Join(s.Home, ".mozilla", "firefox"),
	}

	for _, base := range bases {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			for _, name := range []string{"userChrome.css", "userContent.css"} {
				targets = append(targets, filepath.Join(base, entry.Name(), "chrome", name))
			}
		}
	}
	return targets
}
