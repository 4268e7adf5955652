// Package config loads huectl's configuration from file, environment
// and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	// ThemeDir holds the source theme assets.
	ThemeDir string `mapstructure:"theme_dir"`
	// BackupDir is the root under which timestamped backups are created.
	BackupDir string `mapstructure:"backup_dir"`
	// StateFile records the currently installed palette.
	StateFile string `mapstructure:"state_file"`
	// HistoryDB is the SQLite database recording past runs.
	HistoryDB string `mapstructure:"history_db"`
	// CommandTimeout bounds each external command invocation.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	// LogLevel is the default log level, overridable per invocation.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads the configuration. An explicit path must exist; otherwise
// ~/.config/huectl/config.yaml is used when present and defaults apply
// when it is not. Every key can be overridden through HUECTL_* env vars.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	v := viper.New()
	v.SetDefault("theme_dir", filepath.Join(home, ".local", "share", "huectl", "theme"))
	v.SetDefault("backup_dir", filepath.Join(home, ".local", "share", "huectl", "backups"))
	v.SetDefault("state_file", filepath.Join(home, ".local", "share", "huectl", "installed-palette.json"))
	v.SetDefault("history_db", filepath.Join(home, ".local", "share", "huectl", "history.db"))
	v.SetDefault("command_timeout", "2m")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("HUECTL")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".config", "huectl"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
