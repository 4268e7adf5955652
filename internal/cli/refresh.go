package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/fetch"
	"github.com/huectl/huectl/internal/steps"
	"github.com/huectl/huectl/internal/sysinfo"
)

func init() {
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh-symlinks",
	Short: "Refresh flatpak GTK symlinks",
	Long:  "Re-link gtk.css for every installed flatpak app, picking up apps installed since the theme was.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		executor := execx.NewLocal()
		executor.Timeout = cfg.CommandTimeout
		dc := dconf.NewClient(executor)
		info := sysinfo.Detect(cmd.Context(), executor)

		if !info.HasFlatpak {
			return &PreflightError{
				Message: "flatpak not available",
				Hint:    "the symlink refresh only applies to flatpak apps",
			}
		}

		deps := &steps.Deps{
			ThemeDir: cfg.ThemeDir,
			Home:     info.Home,
			Exec:     executor,
			Dconf:    dc,
			Fetch:    fetch.NewHTTPFetcher(),
			Logger:   logger,
		}
		all := steps.Registry(deps)
		selected, err := steps.Select(all, "14")
		if err != nil {
			return err
		}

		// Symlink creation overwrites nothing worth keeping; run the
		// step directly with backups off.
		bk := backup.NewManager(cfg.BackupDir, info.Home, dc, backup.ModeDisabled, logger)
		result, err := selected[0].Install(cmd.Context(), info, bk, false)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, result)
		}
		fmt.Println(result.Message)
		return nil
	},
}
