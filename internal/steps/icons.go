package steps

import (
	"context"
	"os"
	"path/filepath"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/fetch"
	"github.com/huectl/huectl/internal/sysinfo"
)

const (
	papirusURL = "https://github.com/PapirusDevelopmentTeam/papirus-icon-theme/archive/refs/heads/master.zip"
	bibataURL  = "https://github.com/ful1e5/Bibata_Cursor/releases/download/v2.0.7/Bibata-Modern-Classic.tar.xz"
)

// papirusStep installs the Papirus icon theme, preferring the
// distribution package and falling back to the GitHub archive.
type papirusStep struct {
	meta
}

func newPapirusStep(deps *Deps) Step {
	return &papirusStep{meta{number: 9, name: "Papirus Icons", deps: deps}}
}

func (s *papirusStep) iconsDir() string {
	return s.deps.home(".local", "share", "icons")
}

func (s *papirusStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(filepath.Join(s.iconsDir(), "Papirus-Dark")) || exists("/usr/share/icons/Papirus-Dark")
}

func (s *papirusStep) Install(ctx context.Context, info *sysinfo.Info, _ *backup.Manager, dryRun bool) (Result, error) {
	if s.IsInstalled(info) {
		return s.success("already installed"), nil
	}
	if dryRun {
		return s.success("would install Papirus icons"), nil
	}

	if !info.Immutable && s.installViaPkg(ctx, info) {
		return s.success("installed via package manager"), nil
	}

	tmp, err := os.MkdirTemp("", "huectl-papirus-*")
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(tmp)

	archive := filepath.Join(tmp, "papirus.zip")
	if err := s.deps.Fetch.Download(ctx, papirusURL, archive); err != nil {
		return s.failed("download failed: %v", err), nil
	}
	if err := fetch.ExtractZipTree(archive, tmp); err != nil {
		return s.failed("extraction failed: %v", err), nil
	}

	extracted := filepath.Join(tmp, "papirus-icon-theme-master")
	if !exists(extracted) {
		return s.failed("extraction failed"), nil
	}

	for _, theme := range []string{"Papirus", "Papirus-Dark"} {
		src := filepath.Join(extracted, theme)
		if !exists(src) {
			continue
		}
		dst := filepath.Join(s.iconsDir(), theme)
		if err := os.RemoveAll(dst); err != nil {
			return Result{}, err
		}
		if err := copyTree(src, dst); err != nil {
			return Result{}, err
		}
	}

	s.deps.Exec.Exec(ctx, "gtk-update-icon-cache", filepath.Join(s.iconsDir(), "Papirus-Dark"))
	return s.success("installed from GitHub"), nil
}

func (s *papirusStep) installViaPkg(ctx context.Context, info *sysinfo.Info) bool {
	var cmd []string
	switch info.PkgManager {
	case sysinfo.PkgDNF:
		cmd = []string{"sudo", "dnf", "install", "-y", "papirus-icon-theme"}
	case sysinfo.PkgAPT:
		cmd = []string{"sudo", "apt", "install", "-y", "papirus-icon-theme"}
	case sysinfo.PkgPacman:
		cmd = []string{"sudo", "pacman", "-S", "--noconfirm", "papirus-icon-theme"}
	default:
		return false
	}
	return execx.Ok(ctx, s.deps.Exec, cmd[0], cmd[1:]...)
}

// bibataStep installs the Bibata Modern Classic cursor theme from its
// release tarball.
type bibataStep struct {
	meta
}

func newBibataStep(deps *Deps) Step {
	return &bibataStep{meta{number: 10, name: "Bibata Cursor", deps: deps}}
}

func (s *bibataStep) cursorDir() string {
	return s.deps.home(".local", "share", "icons", "Bibata-Modern-Classic")
}

func (s *bibataStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(s.cursorDir())
}

func (s *bibataStep) Install(ctx context.Context, _ *sysinfo.Info, _ *backup.Manager, dryRun bool) (Result, error) {
	if exists(s.cursorDir()) {
		return s.success("already installed"), nil
	}
	if dryRun {
		return s.success("would install Bibata cursor"), nil
	}

	tmp, err := os.MkdirTemp("", "huectl-bibata-*")
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(tmp)

	archive := filepath.Join(tmp, "bibata.tar.xz")
	if err := s.deps.Fetch.Download(ctx, bibataURL, archive); err != nil {
		return s.failed("download failed: %v", err), nil
	}
	if err := fetch.ExtractTar(ctx, s.deps.Exec, archive, tmp); err != nil {
		return s.failed("extraction failed: %v", err), nil
	}

	src := filepath.Join(tmp, "Bibata-Modern-Classic")
	if !exists(src) {
		return s.failed("cursor theme not found in archive"), nil
	}
	if err := os.MkdirAll(filepath.Dir(s.cursorDir()), 0o755); err != nil {
		return Result{}, err
	}
	if err := copyTree(src, s.cursorDir()); err != nil {
		return Result{}, err
	}
	return s.success("installed"), nil
}

// copyTree copies a directory recursively, re-creating symlinks rather
// than following them. Icon themes are mostly symlink farms.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if d.Type()&os.ModeSymlink != 0 {
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			os.Remove(target)
			return os.Symlink(link, target)
		}
		return backup.CopyFile(path, target)
	})
}
