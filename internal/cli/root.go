// Package cli implements the huectl command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/config"
	"github.com/huectl/huectl/internal/db"
	"github.com/huectl/huectl/internal/logging"
)

var (
	cfgFile        string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noProgress     bool
	logLevel       string
)

var (
	appConfig *config.Config
	logger    zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "huectl",
	Short: "Install, recolor and restore a coordinated desktop theme",
	Long: `huectl installs a coordinated GNOME desktop theme as independent
numbered components, recolors installed assets between named palettes,
and restores any prior state from timestamped backups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg

		level := logLevel
		if level == "" {
			level = cfg.LogLevel
		}
		logger = logging.Setup(level, jsonOutput || jsonlOutput)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/huectl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "machine-readable JSON Lines output")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; use defaults")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printCommandError(err)
		os.Exit(1)
	}
}

// GetConfig returns the loaded application config.
func GetConfig() *config.Config {
	return appConfig
}

// openDatabase opens the run history database with migrations applied.
func openDatabase() (*db.DB, error) {
	database, err := db.Open(GetConfig().HistoryDB)
	if err != nil {
		return nil, err
	}
	if _, err := database.MigrateUp(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}
	return database, nil
}
