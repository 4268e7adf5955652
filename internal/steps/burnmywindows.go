package steps

import (
	"context"
	"os"
	"path/filepath"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/sysinfo"
)

// burnMyWindowsStep installs the Burn My Windows effect profile. Unlike
// the plain copy steps it backs up every existing profile first, since
// the extension rewrites its active profile in place.
type burnMyWindowsStep struct {
	meta
}

func newBurnMyWindowsStep(deps *Deps) Step {
	return &burnMyWindowsStep{meta{number: 6, name: "Burn My Windows", deps: deps}}
}

func (s *burnMyWindowsStep) dest() string {
	return s.deps.home(".config", "burn-my-windows", "profiles", "material-you-orange.conf")
}

func (s *burnMyWindowsStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(s.dest())
}

func (s *burnMyWindowsStep) Install(_ context.Context, _ *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	src := s.deps.asset("burn-my-windows", "material-you-orange.conf")
	if !exists(src) {
		return s.failed("source profile not found"), nil
	}

	profilesDir := filepath.Dir(s.dest())
	if entries, err := os.ReadDir(profilesDir); err == nil {
		for _, e := range entries {
			bk.BackupFile(filepath.Join(profilesDir, e.Name()))
		}
	}

	if dryRun {
		return s.success("would copy to %s", s.dest()), nil
	}

	if err := backup.CopyFile(src, s.dest()); err != nil {
		return Result{}, err
	}
	return s.success("installed"), nil
}
