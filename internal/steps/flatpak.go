package steps

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/sysinfo"
)

const flatpakGlobalOverride = `[Context]
filesystems=xdg-config/gtk-3.0:ro;xdg-config/gtk-4.0:ro;~/.local/share/icons:ro;~/.icons:ro;~/.themes:ro

[Environment]
GTK_THEME=Marble-red-dark
ICON_THEME=Papirus-Dark
QT_QPA_PLATFORMTHEME=gtk3
QT_STYLE_OVERRIDE=adwaita-dark
`

// flatpakOverridesStep grants sandboxed apps read access to the host
// theme directories and forces the themed environment.
type flatpakOverridesStep struct {
	meta
}

func newFlatpakOverridesStep(deps *Deps) Step {
	return &flatpakOverridesStep{meta{number: 13, name: "Flatpak Overrides", deps: deps}}
}

func (s *flatpakOverridesStep) overrideFile() string {
	return s.deps.home(".local", "share", "flatpak", "overrides", "global")
}

func (s *flatpakOverridesStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(s.overrideFile())
}

func (s *flatpakOverridesStep) Install(_ context.Context, info *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	if !info.HasFlatpak {
		return s.skipped("flatpak not available"), nil
	}
	if dryRun {
		return s.success("would write global flatpak override"), nil
	}

	bk.BackupFile(s.overrideFile())

	if err := os.MkdirAll(filepath.Dir(s.overrideFile()), 0o755); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(s.overrideFile(), []byte(flatpakGlobalOverride), 0o644); err != nil {
		return Result{}, err
	}
	return s.success("global override written"), nil
}

// flatpakSymlinksStep links each installed app's per-app gtk.css to the
// host stylesheets so recoloring the host restyles sandboxed apps too.
type flatpakSymlinksStep struct {
	meta
}

func newFlatpakSymlinksStep(deps *Deps) Step {
	return &flatpakSymlinksStep{meta{number: 14, name: "Flatpak GTK Symlinks", deps: deps}}
}

func (s *flatpakSymlinksStep) IsInstalled(_ *sysinfo.Info) bool {
	base := s.deps.home(".var", "app")
	entries, err := os.ReadDir(base)
	if err != nil {
		return false
	}
	for _, e := range entries {
		css := filepath.Join(base, e.Name(), "config", "gtk-4.0", "gtk.css")
		if fi, err := os.Lstat(css); err == nil && fi.Mode()&os.ModeSymlink != 0 {
			return true
		}
	}
	return false
}

func (s *flatpakSymlinksStep) Install(ctx context.Context, info *sysinfo.Info, _ *backup.Manager, dryRun bool) (Result, error) {
	if !info.HasFlatpak {
		return s.skipped("flatpak not available"), nil
	}

	out := execx.Output(ctx, s.deps.Exec, "flatpak", "list", "--app", "--columns=application")
	if out == "" {
		return s.skipped("no flatpak apps found"), nil
	}

	var apps []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			apps = append(apps, line)
		}
	}

	if dryRun {
		return s.success("would create symlinks for %d apps", len(apps)), nil
	}

	sources := map[string]string{
		"gtk-4.0": s.deps.home(".config", "gtk-4.0", "gtk.css"),
		"gtk-3.0": s.deps.home(".config", "gtk-3.0", "gtk.css"),
	}

	count := 0
	for _, appID := range apps {
		for version, src := range sources {
			configDir := s.deps.home(".var", "app", appID, "config", version)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				continue
			}
			dst := filepath.Join(configDir, "gtk.css")
			os.Remove(dst)
			if err := os.Symlink(src, dst); err == nil {
				count++
			}
		}
	}

	return s.success("created %d symlinks for %d apps", count, len(apps)), nil
}
