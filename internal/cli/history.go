package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/db"
	"github.com/huectl/huectl/internal/models"
	"github.com/huectl/huectl/internal/orchestrator"
	"github.com/huectl/huectl/internal/steps"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum runs to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs",
	Long:  "List past install, recolor and restore runs, or show one run's per-step detail.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewRunRepository(database)
		if len(args) == 1 {
			return showRun(cmd.Context(), repo, args[0])
		}
		return listRuns(cmd.Context(), repo)
	},
}

func listRuns(ctx context.Context, repo *db.RunRepository) error {
	runs, err := repo.List(ctx, historyLimit)
	if err != nil {
		return err
	}

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	tbl := newTable(os.Stdout, "ID", "KIND", "PALETTE", "DRY-RUN", "CLEAN", "STARTED")
	for _, run := range runs {
		tbl.row(
			shortID(run.ID),
			string(run.Kind),
			run.Palette,
			formatYesNo(run.DryRun),
			formatYesNo(run.Clean),
			run.StartedAt.Local().Format(time.DateTime),
		)
	}
	return tbl.flush()
}

func showRun(ctx context.Context, repo *db.RunRepository, id string) error {
	run, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, run)
	}

	fmt.Printf("Run %s: %s", run.ID, run.Kind)
	if run.Palette != "" {
		fmt.Printf(" (%s)", run.Palette)
	}
	fmt.Println()
	fmt.Printf("Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
	if !run.FinishedAt.IsZero() {
		fmt.Printf("Finished: %s\n", run.FinishedAt.Local().Format(time.DateTime))
	}
	if run.BackupDir != "" {
		fmt.Printf("Backup:   %s\n", run.BackupDir)
	}

	if len(run.Steps) == 0 {
		return nil
	}
	fmt.Println()
	tbl := newTable(os.Stdout, "#", "COMPONENT", "STATUS", "DETAILS")
	for _, step := range run.Steps {
		tbl.row(
			fmt.Sprintf("%d", step.Number),
			step.Name,
			formatStepStatus(steps.Status(step.Status)),
			step.Message,
		)
	}
	return tbl.flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// startHistory opens the history database and records a started run.
// History is best-effort: failures are logged, never fatal to the run.
func startHistory(ctx context.Context, run *models.Run) *db.DB {
	database, err := openDatabase()
	if err != nil {
		logger.Warn().Err(err).Msg("run history unavailable")
		return nil
	}
	if err := db.NewRunRepository(database).Create(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("recording run failed")
		database.Close()
		return nil
	}
	return database
}

// finishHistory stores the run's outcome and closes the database.
func finishHistory(ctx context.Context, database *db.DB, run *models.Run, results []steps.Result, bk *backup.Manager) {
	if database == nil {
		return
	}
	defer database.Close()

	if results != nil {
		run.Clean = orchestrator.Clean(results)
	}
	if !run.DryRun && bk != nil {
		run.BackupDir = bk.Dir()
	}
	run.Steps = make([]models.RunStep, 0, len(results))
	for _, res := range results {
		run.Steps = append(run.Steps, models.RunStep{
			Number:  res.Number,
			Name:    res.Name,
			Status:  string(res.Status),
			Message: res.Message,
		})
	}

	if err := db.NewRunRepository(database).Finish(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("finishing run record failed")
	}
}
