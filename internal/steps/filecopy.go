package steps

import (
	"context"
	"os"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/sysinfo"
)

// fileCopyStep installs a single theme asset into the user's home. It
// covers every target whose whole install is "back up destination, copy
// file": the shell theme, the GTK stylesheets, the terminal palette and
// the wallpaper.
type fileCopyStep struct {
	meta
	src string
	dst string
}

func (s *fileCopyStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(s.dst)
}

func (s *fileCopyStep) Verify(_ *sysinfo.Info) bool {
	return exists(s.dst)
}

func (s *fileCopyStep) Install(_ context.Context, _ *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	if !exists(s.src) {
		return s.failed("source %s not found", s.src), nil
	}

	// The manager is mode-aware: in dry-run it logs the intent and
	// touches nothing.
	bk.BackupFile(s.dst)

	if dryRun {
		return s.success("would copy to %s", s.dst), nil
	}

	if err := backup.CopyFile(s.src, s.dst); err != nil {
		return Result{}, err
	}
	return s.success("installed"), nil
}

func newShellThemeStep(deps *Deps) Step {
	return &fileCopyStep{
		meta: meta{number: 1, name: "GNOME Shell Theme", deps: deps},
		src:  deps.asset("gnome-shell", "gnome-shell.css"),
		dst:  deps.home(".themes", "Material-You-Orange", "gnome-shell", "gnome-shell.css"),
	}
}

func newGtk4Step(deps *Deps) Step {
	return &fileCopyStep{
		meta: meta{number: 2, name: "GTK4 Theme", deps: deps},
		src:  deps.asset("gtk-4.0", "gtk.css"),
		dst:  deps.home(".config", "gtk-4.0", "gtk.css"),
	}
}

func newGtk3Step(deps *Deps) Step {
	return &fileCopyStep{
		meta: meta{number: 3, name: "GTK3 Theme", deps: deps},
		src:  deps.asset("gtk-3.0", "gtk.css"),
		dst:  deps.home(".config", "gtk-3.0", "gtk.css"),
	}
}

func newPtyxisStep(deps *Deps) Step {
	return &fileCopyStep{
		meta: meta{number: 4, name: "Ptyxis Palette", deps: deps},
		src:  deps.asset("ptyxis", "material-you-orange.palette"),
		dst:  deps.home(".local", "share", "org.gnome.Ptyxis", "palettes", "material-you-orange.palette"),
	}
}

func newWallpaperStep(deps *Deps) Step {
	return &fileCopyStep{
		meta: meta{number: 7, name: "Wallpaper", deps: deps},
		src:  deps.asset("wallpaper", "lockscreen.png"),
		dst:  deps.home(".local", "share", "backgrounds", "lockscreen.png"),
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
