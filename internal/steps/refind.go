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

const (
	refindRPMName   = "refind-0.14.2-1.x86_64.rpm"
	refindDir       = "/boot/efi/EFI/refind"
	refindThemeDest = refindDir + "/themes/material-you"
	refindInclude   = "include themes/material-you/theme.conf"
)

// refindStep installs the rEFInd boot manager from a local RPM, using
// rpm-ostree on immutable systems.
type refindStep struct {
	meta
}

func newRefindStep(deps *Deps) Step {
	return &refindStep{meta{number: 18, name: "rEFInd Boot Manager", sudo: true, deps: deps}}
}

func (s *refindStep) IsInstalled(_ *sysinfo.Info) bool {
	return execx.Ok(context.Background(), s.deps.Exec, "rpm", "-q", "refind")
}

func (s *refindStep) Install(ctx context.Context, info *sysinfo.Info, _ *backup.Manager, dryRun bool) (Result, error) {
	if execx.Ok(ctx, s.deps.Exec, "rpm", "-q", "refind") {
		return s.success("already installed"), nil
	}

	rpmPath := s.deps.home(refindRPMName)
	if !exists(rpmPath) {
		return s.failed("RPM not found: %s", rpmPath), nil
	}

	if dryRun {
		return s.success("would install rEFInd via rpm-ostree"), nil
	}

	var stderr []byte
	var err error
	if info.Immutable {
		_, stderr, err = s.deps.Exec.Exec(ctx, "sudo", "rpm-ostree", "install", rpmPath)
	} else {
		_, stderr, err = s.deps.Exec.Exec(ctx, "sudo", "rpm", "-ivh", rpmPath)
	}
	if err != nil {
		return s.failed("install failed: %s", execx.Diagnostic(stderr, 100)), nil
	}

	if _, stderr, err = s.deps.Exec.Exec(ctx, "sudo", "refind-install"); err != nil {
		return s.failed("refind-install failed: %s", execx.Diagnostic(stderr, 100)), nil
	}

	return s.success("installed and configured"), nil
}

// refindThemeStep deploys the boot theme onto the EFI partition and
// references it from refind.conf.
type refindThemeStep struct {
	meta
}

func newRefindThemeStep(deps *Deps) Step {
	return &refindThemeStep{meta{number: 19, name: "rEFInd Material You Theme", sudo: true, deps: deps}}
}

func (s *refindThemeStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(filepath.Join(refindThemeDest, "theme.conf"))
}

func (s *refindThemeStep) Install(ctx context.Context, _ *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	srcDir := s.deps.asset("refind")
	if !exists(srcDir) {
		return s.failed("source refind theme not found"), nil
	}

	refindConf := filepath.Join(refindDir, "refind.conf")
	if !exists(refindConf) {
		return s.failed("refind.conf not found, is rEFInd installed?"), nil
	}

	if dryRun {
		return s.success("would deploy theme to %s", refindThemeDest), nil
	}

	// The EFI partition is root-owned, so the snapshot is a sudo copy
	// into the backup tree rather than a manifest-tracked file.
	if exists(refindThemeDest) {
		backupTarget := filepath.Join(bk.Dir(), "files", "boot", "efi", "EFI", "refind", "themes", "material-you")
		if err := os.MkdirAll(filepath.Dir(backupTarget), 0o755); err == nil {
			execx.Ok(ctx, s.deps.Exec, "sudo", "cp", "-r", refindThemeDest, backupTarget)
		}
	}

	execx.Ok(ctx, s.deps.Exec, "sudo", "mkdir", "-p", filepath.Join(refindThemeDest, "icons"))

	for _, item := range []string{"background.png", "theme.conf", "selection_big.png", "selection_small.png"} {
		src := filepath.Join(srcDir, item)
		if !exists(src) {
			continue
		}
		if !execx.Ok(ctx, s.deps.Exec, "sudo", "cp", src, filepath.Join(refindThemeDest, item)) {
			return s.failed("failed to copy %s", item), nil
		}
	}

	iconsSrc := filepath.Join(srcDir, "icons")
	if entries, err := os.ReadDir(iconsSrc); err == nil {
		for _, e := range entries {
			execx.Ok(ctx, s.deps.Exec, "sudo", "cp",
				filepath.Join(iconsSrc, e.Name()),
				filepath.Join(refindThemeDest, "icons", e.Name()))
		}
	}

	conf := execx.Output(ctx, s.deps.Exec, "sudo", "cat", refindConf)
	if !strings.Contains(conf, refindInclude) {
		if _, _, err := s.deps.Exec.ExecInput(ctx, "\n"+refindInclude+"\n", "sudo", "tee", "-a", refindConf); err != nil {
			return s.failed("failed to update refind.conf"), nil
		}
	}

	return s.success("theme deployed"), nil
}
