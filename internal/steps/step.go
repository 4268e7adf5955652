// Package steps defines the uniform install-step contract and the
// ordered registry of configuration targets.
package steps

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/fetch"
	"github.com/huectl/huectl/internal/sysinfo"
)

// Selection errors.
var (
	ErrInvalidSelection = errors.New("invalid step selection")
	ErrEmptySelection   = errors.New("no steps selected")
)

// Status is the terminal state of one executed step.
type Status string

// Step statuses.
const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// Result is the single record produced for one executed step.
type Result struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Step is one independently installable configuration unit. Steps are
// stateless singletons; all per-run state lives in the orchestrator.
//
// Install must back up every path or key it is about to mutate, strictly
// before mutating it. The orchestrator does not enforce this; it is a
// contract each step honors internally.
type Step interface {
	Number() int
	Name() string
	RequiresSudo() bool

	// IsInstalled is a side-effect-free probe used for display only.
	// Install never consults it: re-running Install on an installed
	// target must itself be safe.
	IsInstalled(info *sysinfo.Info) bool

	// Install performs the step. In dry-run mode it performs zero
	// mutation and describes what would happen. A returned error marks
	// an unexpected failure subject to the run's failure policy;
	// expected failures come back as a Failed result.
	Install(ctx context.Context, info *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error)

	// Verify is an optional post-condition check.
	Verify(info *sysinfo.Info) bool

	// Uninstall is optional; reversal is primarily the backup
	// manager's restore, not per-step inverse logic.
	Uninstall(info *sysinfo.Info) bool
}

// Deps carries the collaborators steps share.
type Deps struct {
	// ThemeDir is the directory holding the source theme assets.
	ThemeDir string
	Home     string
	Exec     execx.Executor
	Dconf    *dconf.Client
	Fetch    fetch.Fetcher
	Logger   zerolog.Logger
}

// asset returns the path of a source theme asset.
func (d *Deps) asset(parts ...string) string {
	return filepath.Join(append([]string{d.ThemeDir}, parts...)...)
}

// home returns a path under the user's home directory.
func (d *Deps) home(parts ...string) string {
	return filepath.Join(append([]string{d.Home}, parts...)...)
}

// meta supplies the identity fields and default behavior every step shares.
type meta struct {
	number int
	name   string
	sudo   bool
	deps   *Deps
}

func (m meta) Number() int                      { return m.number }
func (m meta) Name() string                     { return m.name }
func (m meta) RequiresSudo() bool               { return m.sudo }
func (m meta) Verify(_ *sysinfo.Info) bool      { return true }
func (m meta) Uninstall(_ *sysinfo.Info) bool   { return true }
func (m meta) IsInstalled(_ *sysinfo.Info) bool { return false }

func (m meta) success(format string, args ...any) Result {
	return Result{Number: m.number, Name: m.name, Status: StatusSuccess, Message: fmt.Sprintf(format, args...)}
}

func (m meta) skipped(format string, args ...any) Result {
	return Result{Number: m.number, Name: m.name, Status: StatusSkipped, Message: fmt.Sprintf(format, args...)}
}

func (m meta) failed(format string, args ...any) Result {
	return Result{Number: m.number, Name: m.name, Status: StatusFailed, Message: fmt.Sprintf(format, args...)}
}

// Registry returns every step in install order. Step numbers are stable
// identities: they define execution order and are the external
// addressing scheme for selection.
func Registry(deps *Deps) []Step {
	return []Step{
		newShellThemeStep(deps),       // 1
		newGtk4Step(deps),             // 2
		newGtk3Step(deps),             // 3
		newPtyxisStep(deps),           // 4
		newFastfetchStep(deps),        // 5
		newBurnMyWindowsStep(deps),    // 6
		newWallpaperStep(deps),        // 7
		newFontsStep(deps),            // 8
		newPapirusStep(deps),          // 9
		newBibataStep(deps),           // 10
		newExtensionsStep(deps),       // 11
		newDconfSettingsStep(deps),    // 12
		newFlatpakOverridesStep(deps), // 13
		newFlatpakSymlinksStep(deps),  // 14
		newFirefoxStep(deps),          // 15
		newGdmStep(deps),              // 16
		newDingFixStep(deps),          // 17
		newRefindStep(deps),           // 18
		newRefindThemeStep(deps),      // 19
	}
}

// Select resolves a selection expression against the registry. The
// grammar accepts comma-separated numbers and inclusive ranges
// ("1,3-5,9"), plus "all". Duplicates and ordering in the input are
// irrelevant; the result is always in step-number order.
func Select(all []Step, expr string) ([]Step, error) {
	expr = strings.TrimSpace(strings.ToLower(expr))
	if expr == "" {
		return nil, ErrEmptySelection
	}
	if expr == "all" || expr == "*" {
		return all, nil
	}

	wanted := make(map[int]struct{})
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if start, end, ok := strings.Cut(part, "-"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(start))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, part)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(end))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, part)
			}
			if hi < lo {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, part)
			}
			for n := lo; n <= hi; n++ {
				wanted[n] = struct{}{}
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, part)
		}
		wanted[n] = struct{}{}
	}

	var selected []Step
	for _, step := range all {
		if _, ok := wanted[step.Number()]; ok {
			selected = append(selected, step)
		}
	}
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].Number() < selected[j].Number() })
	return selected, nil
}
