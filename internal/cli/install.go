package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/fetch"
	"github.com/huectl/huectl/internal/models"
	"github.com/huectl/huectl/internal/orchestrator"
	"github.com/huectl/huectl/internal/palette"
	"github.com/huectl/huectl/internal/steps"
	"github.com/huectl/huectl/internal/sysinfo"
	"github.com/huectl/huectl/internal/tui"
)

var (
	installComponents string
	installDryRun     bool
	installNoBackup   bool
	installYes        bool
)

func init() {
	installCmd.Flags().StringVarP(&installComponents, "components", "c", "", "components to install, e.g. \"1,3-5,9\" or \"all\"")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "describe actions without mutating anything")
	installCmd.Flags().BoolVar(&installNoBackup, "no-backup", false, "skip backing up overwritten state")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install theme components",
	Long: `Install the selected theme components in order. Without --components
an interactive checklist is shown; non-interactive runs install everything.
Each run creates a timestamped backup of the state it overwrites.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.Context())
	},
}

func runInstall(ctx context.Context) error {
	cfg := GetConfig()

	executor := execx.NewLocal()
	executor.Timeout = cfg.CommandTimeout
	dc := dconf.NewClient(executor)
	info := sysinfo.Detect(ctx, executor)

	deps := &steps.Deps{
		ThemeDir: cfg.ThemeDir,
		Home:     info.Home,
		Exec:     executor,
		Dconf:    dc,
		Fetch:    fetch.NewHTTPFetcher(),
		Logger:   logger,
	}
	all := steps.Registry(deps)

	selected, err := selectComponents(all, info)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(os.Stderr, "nothing selected")
		return nil
	}

	if !installYes && !installDryRun && IsInteractive() {
		if !confirmSelection(selected) {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}
	}

	mode := backup.ModeWrite
	switch {
	case installDryRun:
		mode = backup.ModeDryRun
	case installNoBackup:
		mode = backup.ModeDisabled
	}
	bk := backup.NewManager(cfg.BackupDir, info.Home, dc, mode, logger)
	if err := bk.Init(); err != nil {
		return fmt.Errorf("preparing backup directory: %w", err)
	}

	run := &models.Run{
		Kind:    models.RunKindInstall,
		Palette: palette.DefaultName,
		DryRun:  installDryRun,
	}
	history := startHistory(ctx, run)

	runner := &orchestrator.Runner{
		Info:   info,
		Backup: bk,
		DryRun: installDryRun,
		Logger: logger,
	}

	var results []steps.Result
	var runErr error
	if useProgressTUI() {
		results, runErr = runWithTUI(ctx, runner, selected)
	} else {
		runner.Policy = failurePolicy()
		runner.Observe = plainObserver()
		results, runErr = runner.Run(ctx, selected)
	}
	if runErr != nil && !errors.Is(runErr, orchestrator.ErrAborted) {
		return runErr
	}

	if !installDryRun && anySuccess(results) {
		state := palette.NewState(cfg.StateFile)
		if err := state.Save(palette.DefaultName); err != nil {
			logger.Warn().Err(err).Msg("saving installed palette state failed")
		}
	}

	finishHistory(ctx, history, run, results, bk)

	if IsJSONOutput() || IsJSONLOutput() {
		if err := WriteOutput(os.Stdout, results); err != nil {
			return err
		}
	} else {
		printResults(results, bk)
	}

	if errors.Is(runErr, orchestrator.ErrAborted) {
		return runErr
	}
	if failed := countStatus(results, steps.StatusFailed); failed > 0 {
		return fmt.Errorf("%d component(s) failed", failed)
	}
	return nil
}

// selectComponents resolves the --components expression, falling back
// to an interactive checklist, or everything when non-interactive.
func selectComponents(all []steps.Step, info *sysinfo.Info) ([]steps.Step, error) {
	if installComponents != "" {
		return steps.Select(all, installComponents)
	}
	if IsNonInteractive() {
		return all, nil
	}
	return promptSelection(all, info)
}

func promptSelection(all []steps.Step, info *sysinfo.Info) ([]steps.Step, error) {
	fmt.Println("Select components to install")
	fmt.Println("Enter numbers separated by commas, ranges (1-7), or 'all'.")
	fmt.Println()

	tbl := newTable(os.Stdout, "#", "COMPONENT", "SUDO", "INSTALLED")
	for _, step := range all {
		installed := ""
		if step.IsInstalled(info) {
			installed = "yes"
		}
		tbl.row(
			fmt.Sprintf("%d", step.Number()),
			step.Name(),
			formatYesNo(step.RequiresSudo()),
			installed,
		)
	}
	if err := tbl.flush(); err != nil {
		return nil, err
	}
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Components [all]: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))

		switch answer {
		case "":
			answer = "all"
		case "q", "quit", "exit", "none":
			return nil, nil
		}

		selected, err := steps.Select(all, answer)
		if err != nil {
			fmt.Println("Invalid input. Use numbers, ranges (1-7), 'all', or 'quit'.")
			continue
		}
		return selected, nil
	}
}

func confirmSelection(selected []steps.Step) bool {
	fmt.Println("Selected components:")
	for _, step := range selected {
		fmt.Printf("  %2d. %s\n", step.Number(), step.Name())
	}
	fmt.Print("Proceed? [Y/n]: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}

// failurePolicy prompts retry/skip/abort on failures in interactive
// sessions and records failures otherwise.
func failurePolicy() orchestrator.Policy {
	if IsNonInteractive() {
		return orchestrator.NonInteractive
	}

	reader := bufio.NewReader(os.Stdin)
	return func(step steps.Step, err error) orchestrator.Decision {
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nerror in %s: %v\n", step.Name(), err)
		} else {
			fmt.Fprintf(os.Stderr, "\n%s failed\n", step.Name())
		}
		for {
			fmt.Fprint(os.Stderr, "[R]etry / [S]kip / [A]bort [s]: ")
			line, readErr := reader.ReadString('\n')
			if readErr != nil {
				return orchestrator.DecisionFail
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "r", "retry":
				return orchestrator.DecisionRetry
			case "s", "skip", "":
				return orchestrator.DecisionSkip
			case "a", "abort":
				return orchestrator.DecisionAbort
			}
		}
	}
}

func useProgressTUI() bool {
	return IsInteractive() && !noProgress && !IsJSONOutput() && !IsJSONLOutput()
}

// runWithTUI owns the terminal with the progress view while the run
// executes in a goroutine. The TUI run is always non-prompting: the
// failure policy falls back to recording failures.
func runWithTUI(ctx context.Context, runner *orchestrator.Runner, selected []steps.Step) ([]steps.Result, error) {
	progress := tui.NewProgress("default")

	runner.Policy = orchestrator.NonInteractive
	runner.Observe = func(ev orchestrator.Event) {
		if ev.Result == nil {
			progress.Send(tui.StepStartedMsg{
				Index:  ev.Index,
				Total:  ev.Total,
				Number: ev.Step.Number(),
				Name:   ev.Step.Name(),
			})
			return
		}
		progress.Send(tui.StepFinishedMsg{
			Index:   ev.Index,
			Total:   ev.Total,
			Number:  ev.Step.Number(),
			Name:    ev.Step.Name(),
			Status:  string(ev.Result.Status),
			Message: ev.Result.Message,
		})
	}

	var results []steps.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, runErr = runner.Run(ctx, selected)
		progress.Finish(runErr)
	}()

	if err := progress.Wait(); err != nil {
		logger.Warn().Err(err).Msg("progress view failed")
	}
	<-done
	return results, runErr
}

func plainObserver() orchestrator.Observer {
	if noProgress || IsJSONOutput() || IsJSONLOutput() {
		return nil
	}
	return func(ev orchestrator.Event) {
		if ev.Result == nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s... ", ev.Index+1, ev.Total, ev.Step.Name())
			return
		}
		fmt.Fprintf(os.Stderr, "%s\n", ev.Result.Status)
	}
}

func printResults(results []steps.Result, bk *backup.Manager) {
	fmt.Println()
	tbl := newTable(os.Stdout, "#", "COMPONENT", "STATUS", "DETAILS")
	for _, res := range results {
		tbl.row(
			fmt.Sprintf("%d", res.Number),
			res.Name,
			formatStepStatus(res.Status),
			res.Message,
		)
	}
	tbl.flush()

	success := countStatus(results, steps.StatusSuccess)
	skipped := countStatus(results, steps.StatusSkipped)
	failed := countStatus(results, steps.StatusFailed)

	fmt.Println()
	if failed == 0 && skipped == 0 {
		fmt.Println("All components installed successfully.")
	} else {
		fmt.Printf("%d succeeded, %d skipped, %d failed\n", success, skipped, failed)
	}

	if !installDryRun && !installNoBackup {
		fmt.Printf("\nBackup saved to: %s\n", bk.Dir())
		fmt.Println("To restore: huectl restore")
	}
	if !installDryRun && success > 0 {
		fmt.Println("\nNote: some changes require logging out and back in to take effect.")
	}
}

func countStatus(results []steps.Result, status steps.Status) int {
	n := 0
	for _, res := range results {
		if res.Status == status {
			n++
		}
	}
	return n
}

func anySuccess(results []steps.Result) bool {
	return countStatus(results, steps.StatusSuccess) > 0
}
