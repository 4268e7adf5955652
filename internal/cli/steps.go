package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/fetch"
	"github.com/huectl/huectl/internal/steps"
	"github.com/huectl/huectl/internal/sysinfo"
)

func init() {
	rootCmd.AddCommand(stepsCmd)
}

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List installable components",
	Long:  "List every component with its number, sudo requirement and installed state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		executor := execx.NewLocal()
		executor.Timeout = cfg.CommandTimeout
		info := sysinfo.Detect(cmd.Context(), executor)

		deps := &steps.Deps{
			ThemeDir: cfg.ThemeDir,
			Home:     info.Home,
			Exec:     executor,
			Dconf:    dconf.NewClient(executor),
			Fetch:    fetch.NewHTTPFetcher(),
			Logger:   logger,
		}
		all := steps.Registry(deps)

		if IsJSONOutput() || IsJSONLOutput() {
			type stepInfo struct {
				Number    int    `json:"number"`
				Name      string `json:"name"`
				Sudo      bool   `json:"sudo"`
				Installed bool   `json:"installed"`
			}
			out := make([]stepInfo, 0, len(all))
			for _, step := range all {
				out = append(out, stepInfo{
					Number:    step.Number(),
					Name:      step.Name(),
					Sudo:      step.RequiresSudo(),
					Installed: step.IsInstalled(info),
				})
			}
			return WriteOutput(os.Stdout, out)
		}

		tbl := newTable(os.Stdout, "#", "COMPONENT", "SUDO", "INSTALLED")
		for _, step := range all {
			tbl.row(
				fmt.Sprintf("%d", step.Number()),
				step.Name(),
				formatYesNo(step.RequiresSudo()),
				formatYesNo(step.IsInstalled(info)),
			)
		}
		return tbl.flush()
	},
}
