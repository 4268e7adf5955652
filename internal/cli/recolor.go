package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/models"
	"github.com/huectl/huectl/internal/palette"
	"github.com/huectl/huectl/internal/recolor"
	"github.com/huectl/huectl/internal/sysinfo"
)

var recolorList bool

func init() {
	recolorCmd.Flags().BoolVarP(&recolorList, "list", "l", false, "list available palettes")
	rootCmd.AddCommand(recolorCmd)
}

var recolorCmd = &cobra.Command{
	Use:   "recolor [palette]",
	Short: "Recolor installed theme files to another palette",
	Long: `Remap every color in the installed theme files from the currently
installed palette to the named one, then refresh the running desktop.
Requires a prior install.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if recolorList || len(args) == 0 {
			return listPalettes()
		}
		return runRecolor(cmd, args[0])
	},
}

func listPalettes() error {
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, palette.Names())
	}

	tbl := newTable(os.Stdout, "PALETTE", "PRIMARY", "ACCENT")
	for _, p := range palette.All() {
		tbl.row(p.Name, p.Primary(), p.AccentName())
	}
	return tbl.flush()
}

func runRecolor(cmd *cobra.Command, name string) error {
	cfg := GetConfig()

	target, err := palette.Get(normalizePaletteName(name))
	if err != nil {
		return &PreflightError{
			Message:  fmt.Sprintf("unknown palette %q", name),
			Hint:     "palette names: " + strings.Join(palette.Names(), ", "),
			NextStep: "huectl recolor --list",
		}
	}

	executor := execx.NewLocal()
	executor.Timeout = cfg.CommandTimeout
	info := sysinfo.Detect(cmd.Context(), executor)

	svc := &recolor.Service{
		Home:   info.Home,
		State:  palette.NewState(cfg.StateFile),
		Dconf:  dconf.NewClient(executor),
		Exec:   executor,
		Logger: logger,
	}

	run := &models.Run{Kind: models.RunKindRecolor, Palette: target.Name}
	history := startHistory(cmd.Context(), run)

	ph := beginPhase(fmt.Sprintf("Recoloring to %s", target.Name))
	changed, err := svc.Apply(cmd.Context(), target.Name)
	if err != nil {
		ph.fail(err)
		finishHistory(cmd.Context(), history, run, nil, nil)

		switch {
		case errors.Is(err, palette.ErrNoInstalledPalette):
			return &PreflightError{
				Message:  "no installed palette recorded",
				Hint:     "install the theme before recoloring",
				NextStep: "huectl install",
			}
		case errors.Is(err, recolor.ErrSamePalette):
			return fmt.Errorf("theme is already %s", target.Name)
		}
		return err
	}
	ph.done(fmt.Sprintf("%d file(s) recolored", changed))

	run.Clean = true
	finishHistory(cmd.Context(), history, run, nil, nil)

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, map[string]any{
			"palette":       target.Name,
			"files_changed": changed,
		})
	}
	fmt.Printf("Recolored %d file(s) to %s.\n", changed, target.Name)
	return nil
}

// normalizePaletteName maps case-insensitive input to registry casing.
func normalizePaletteName(name string) string {
	for _, known := range palette.Names() {
		if strings.EqualFold(known, name) {
			return known
		}
	}
	return name
}
