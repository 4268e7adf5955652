package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/palette"
	"github.com/huectl/huectl/internal/sysinfo"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system and theme state",
	Long:  "Show the detected host, the installed palette and the latest backup.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		executor := execx.NewLocal()
		executor.Timeout = cfg.CommandTimeout
		info := sysinfo.Detect(cmd.Context(), executor)

		installed, err := palette.NewState(cfg.StateFile).Load()
		if err != nil && !errors.Is(err, palette.ErrNoInstalledPalette) {
			return err
		}

		var latestBackup string
		if backups, err := backup.ListBackups(cfg.BackupDir); err == nil && len(backups) > 0 {
			latestBackup = backups[0]
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"distro":        info.DistroName,
				"gnome_version": info.GnomeVersion,
				"pkg_manager":   string(info.PkgManager),
				"immutable":     info.Immutable,
				"wayland":       info.Wayland,
				"flatpak":       info.HasFlatpak,
				"palette":       installed,
				"latest_backup": latestBackup,
			})
		}

		tbl := newTable(os.Stdout)
		tbl.row("Distro", orUnknown(info.DistroName))
		tbl.row("GNOME", orUnknown(info.GnomeVersion))
		tbl.row("Package manager", string(info.PkgManager))
		tbl.row("Immutable OS", formatYesNo(info.Immutable))
		tbl.row("Wayland", formatYesNo(info.Wayland))
		tbl.row("Flatpak", formatYesNo(info.HasFlatpak))
		tbl.row("Installed palette", orNone(installed))
		if latestBackup != "" {
			tbl.row("Latest backup", filepath.Base(latestBackup))
		}
		return tbl.flush()
	},
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func orNone(value string) string {
	if value == "" {
		return "none"
	}
	return value
}
