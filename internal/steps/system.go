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

const gdmDconfDest = "/etc/dconf/db/gdm.d/01-material-you"

// gdmStep themes the login screen: the GDM dconf profile, the Inter
// font for system scope and the cursor theme, then rebuilds the dconf
// database. Every mutation goes through sudo.
type gdmStep struct {
	meta
}

func newGdmStep(deps *Deps) Step {
	return &gdmStep{meta{number: 16, name: "GDM Theme", sudo: true, deps: deps}}
}

func (s *gdmStep) IsInstalled(_ *sysinfo.Info) bool {
	return exists(gdmDconfDest)
}

func (s *gdmStep) Install(ctx context.Context, _ *sysinfo.Info, _ *backup.Manager, dryRun bool) (Result, error) {
	src := s.deps.asset("gdm", "01-material-you")
	if !exists(src) {
		return s.failed("source GDM dconf not found"), nil
	}

	if dryRun {
		return s.success("would configure GDM theme (requires sudo)"), nil
	}

	var done []string

	execx.Ok(ctx, s.deps.Exec, "sudo", "mkdir", "-p", filepath.Dir(gdmDconfDest))
	if execx.Ok(ctx, s.deps.Exec, "sudo", "cp", src, gdmDconfDest) {
		done = append(done, "dconf")
	}

	if font := s.findInterFont(); font != "" {
		execx.Ok(ctx, s.deps.Exec, "sudo", "mkdir", "-p", "/etc/fonts/local-fonts")
		if execx.Ok(ctx, s.deps.Exec, "sudo", "cp", font, filepath.Join("/etc/fonts/local-fonts", filepath.Base(font))) {
			done = append(done, "font")
		}
	}

	cursorSrc := s.deps.home(".local", "share", "icons", "Bibata-Modern-Classic")
	if exists(cursorSrc) {
		dest := "/usr/local/share/icons/Bibata-Modern-Classic"
		execx.Ok(ctx, s.deps.Exec, "sudo", "mkdir", "-p", "/usr/local/share/icons")
		execx.Ok(ctx, s.deps.Exec, "sudo", "rm", "-rf", dest)
		if execx.Ok(ctx, s.deps.Exec, "sudo", "cp", "-r", cursorSrc, dest) {
			done = append(done, "cursor")
		}
	}

	if execx.Ok(ctx, s.deps.Exec, "sudo", "dconf", "update") {
		done = append(done, "db-updated")
	}

	return s.success("configured: %s", strings.Join(done, ", ")), nil
}

func (s *gdmStep) findInterFont() string {
	fontsDir := s.deps.home(".local", "share", "fonts")
	entries, err := os.ReadDir(fontsDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if strings.HasPrefix(e.Name(), "Inter") && (ext == ".ttf" || ext == ".otf") {
			return filepath.Join(fontsDir, e.Name())
		}
	}
	return ""
}

// dingFixStep raises the CSS priority of the desktop-icons extension so
// the shell theme's styling wins over the extension default.
type dingFixStep struct {
	meta
}

func newDingFixStep(deps *Deps) Step {
	return &dingFixStep{meta{number: 17, name: "DING Desktop Icons Fix", deps: deps}}
}

const (
	dingOldPriority = "priority: 600"
	dingNewPriority = "priority: 900"
)

func (s *dingFixStep) candidates() []string {
	rel := filepath.Join("ding@rastersoft.com", "app", "desktopManager.js")
	return []string{
		s.deps.home(".local", "share", "gnome-shell", "extensions", rel),
		filepath.Join(systemExtensionsDir, rel),
	}
}

func (s *dingFixStep) IsInstalled(_ *sysinfo.Info) bool {
	for _, p := range s.candidates() {
		data, err := os.ReadFile(p)
		if err == nil && strings.Contains(string(data), dingNewPriority) {
			return true
		}
	}
	return false
}

func (s *dingFixStep) Install(ctx context.Context, _ *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	var target string
	for _, p := range s.candidates() {
		if exists(p) {
			target = p
			break
		}
	}
	if target == "" {
		return s.skipped("DING extension not found"), nil
	}

	if dryRun {
		return s.success("would patch %s", target), nil
	}

	bk.BackupFile(target)

	data, err := os.ReadFile(target)
	if err != nil {
		return Result{}, err
	}
	content := string(data)

	switch {
	case strings.Contains(content, dingOldPriority):
		patched := strings.ReplaceAll(content, dingOldPriority, dingNewPriority)
		if strings.HasPrefix(target, "/usr/") {
			if err := s.sudoWrite(ctx, target, patched); err != nil {
				return s.failed("failed to write (sudo): %v", err), nil
			}
		} else if err := os.WriteFile(target, []byte(patched), 0o644); err != nil {
			return Result{}, err
		}
		return s.success("patched priority 600 -> 900"), nil
	case strings.Contains(content, dingNewPriority):
		return s.success("already patched"), nil
	default:
		return s.skipped("priority pattern not found"), nil
	}
}

// sudoWrite stages content in a temp file and copies it into a
// root-owned path.
func (s *dingFixStep) sudoWrite(ctx context.Context, target, content string) error {
	tmp, err := os.CreateTemp("", "huectl-ding-*.js")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	tmp.Close()

	_, stderr, err := s.deps.Exec.Exec(ctx, "sudo", "cp", tmp.Name(), target)
	if err != nil {
		return &execError{diag: execx.Diagnostic(stderr, 100), err: err}
	}
	return nil
}

type execError struct {
	diag string
	err  error
}

func (e *execError) Error() string {
	if e.diag != "" {
		return e.diag
	}
	return e.err.Error()
}

func (e *execError) Unwrap() error { return e.err }
