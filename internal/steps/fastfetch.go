package steps

import (
	"context"
	"os"
	"strings"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/sysinfo"
)

const bashrcMarker = "# Material Gnome Terminal"

const bashrcGreeting = "\n" + bashrcMarker + "\n" +
	"if [[ $- == *i* ]] && [[ ! -v MATERIAL_TERMINAL ]]; then\n" +
	"    export MATERIAL_TERMINAL=1\n" +
	"    printf '\\n'\n" +
	"    /usr/bin/fastfetch -c ~/.config/fastfetch/config.jsonc\n" +
	"    printf '\\n'\n" +
	"fi\n"

// fastfetchStep installs the fastfetch config and logo, disables the
// distro motd, and hooks fastfetch into interactive bash sessions.
type fastfetchStep struct {
	meta
}

func newFastfetchStep(deps *Deps) Step {
	return &fastfetchStep{meta{number: 5, name: "Fastfetch Config", deps: deps}}
}

func (s *fastfetchStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(s.deps.home(".config", "fastfetch", "config.jsonc")) &&
		exists(s.deps.home(".config", "fastfetch", "material-logo.txt"))
}

func (s *fastfetchStep) Install(_ context.Context, _ *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	srcCfg := s.deps.asset("fastfetch", "config.jsonc")
	srcLogo := s.deps.asset("fastfetch", "material-logo.txt")
	dstCfg := s.deps.home(".config", "fastfetch", "config.jsonc")
	dstLogo := s.deps.home(".config", "fastfetch", "material-logo.txt")

	if !exists(srcCfg) {
		return s.failed("source config.jsonc not found"), nil
	}

	bk.BackupFile(dstCfg)
	bk.BackupFile(dstLogo)

	if dryRun {
		return s.success("would copy to %s", s.deps.home(".config", "fastfetch")), nil
	}

	if err := backup.CopyFile(srcCfg, dstCfg); err != nil {
		return Result{}, err
	}
	if exists(srcLogo) {
		if err := backup.CopyFile(srcLogo, dstLogo); err != nil {
			return Result{}, err
		}
	}

	// Bazzite shows its own motd in new terminals; the flag file
	// suppresses it so the fastfetch greeting stands alone.
	motdFlag := s.deps.home(".config", "no-show-user-motd")
	if !exists(motdFlag) {
		f, err := os.Create(motdFlag)
		if err == nil {
			f.Close()
		}
	}

	if err := s.appendGreeting(bk); err != nil {
		return Result{}, err
	}

	return s.success("installed"), nil
}

func (s *fastfetchStep) appendGreeting(bk *backup.Manager) error {
	bashrc := s.deps.home(".bashrc")
	data, err := os.ReadFile(bashrc)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if strings.Contains(string(data), bashrcMarker) {
		return nil
	}

	bk.BackupFile(bashrc)

	f, err := os.OpenFile(bashrc, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(bashrcGreeting)
	return err
}
