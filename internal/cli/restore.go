package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/models"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup]",
	Short: "Restore a previous backup",
	Long: `Restore files and configuration keys from a timestamped backup.
Without an argument the newest backup is offered; interactive sessions
can pick from the list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		backups, err := backup.ListBackups(cfg.BackupDir)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return &PreflightError{
				Message:  "no backups found",
				Hint:     "backups are created by huectl install",
				NextStep: "huectl install",
			}
		}

		var dir string
		switch {
		case len(args) == 1:
			dir = resolveBackupArg(cfg.BackupDir, backups, args[0])
			if dir == "" {
				return fmt.Errorf("backup %q not found under %s", args[0], cfg.BackupDir)
			}
		case IsInteractive():
			dir, err = promptBackup(backups)
			if err != nil {
				return err
			}
			if dir == "" {
				fmt.Fprintln(os.Stderr, "aborted")
				return nil
			}
		default:
			dir = backups[0]
		}

		executor := execx.NewLocal()
		executor.Timeout = cfg.CommandTimeout
		dc := dconf.NewClient(executor)

		run := &models.Run{Kind: models.RunKindRestore, BackupDir: dir}
		history := startHistory(cmd.Context(), run)

		ph := beginPhase("Restoring " + filepath.Base(dir))
		report, err := backup.Restore(cmd.Context(), dir, dc, logger)
		if err != nil {
			ph.fail(err)
			finishHistory(cmd.Context(), history, run, nil, nil)
			return err
		}
		ph.done(fmt.Sprintf("%d file(s), %d dconf path(s)",
			len(report.FilesRestored), len(report.KeysRestored)))

		run.Clean = report.Clean()
		finishHistory(cmd.Context(), history, run, nil, nil)

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, report)
		}

		fmt.Printf("Restored %d file(s) and %d configuration path(s) from %s.\n",
			len(report.FilesRestored), len(report.KeysRestored), report.Timestamp)
		if len(report.FilesMissing) > 0 || len(report.KeysFailed) > 0 {
			fmt.Printf("%d file(s) missing from backup, %d configuration path(s) failed.\n",
				len(report.FilesMissing), len(report.KeysFailed))
		}
		fmt.Println("Note: log out and back in for all changes to take effect.")
		return nil
	},
}

// resolveBackupArg accepts either a timestamp name or a full path.
func resolveBackupArg(root string, backups []string, arg string) string {
	for _, dir := range backups {
		if dir == arg || filepath.Base(dir) == arg {
			return dir
		}
	}
	candidate := filepath.Join(root, arg)
	for _, dir := range backups {
		if dir == candidate {
			return dir
		}
	}
	return ""
}

func promptBackup(backups []string) (string, error) {
	fmt.Println("Available backups:")
	for i, dir := range backups {
		line := fmt.Sprintf("  %d. %s", i+1, filepath.Base(dir))
		if manifest, err := backup.LoadManifest(filepath.Join(dir, backup.ManifestName)); err == nil {
			line += fmt.Sprintf(" (%d files, %d dconf paths)", len(manifest.Files), len(manifest.ConfigKeys))
		}
		fmt.Println(line)
	}

	fmt.Print("Select backup to restore [1]: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return backups[0], nil
	}
	if answer == "q" || answer == "quit" {
		return "", nil
	}

	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(backups) {
		return "", fmt.Errorf("invalid selection %q", answer)
	}
	return backups[idx-1], nil
}
