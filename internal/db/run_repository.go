package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huectl/huectl/internal/models"
)

// Run repository errors.
var (
	ErrRunNotFound = errors.New("run not found")
	ErrInvalidRun  = errors.New("invalid run")
)

// RunRepository handles run history persistence.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new RunRepository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run in its started state.
func (r *RunRepository) Create(ctx context.Context, run *models.Run) error {
	if run.Kind == "" {
		return ErrInvalidRun
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, palette, dry_run, clean, backup_dir, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		string(run.Kind),
		run.Palette,
		boolInt(run.DryRun),
		boolInt(run.Clean),
		run.BackupDir,
		run.StartedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// Finish marks a run as finished and stores its step outcomes.
func (r *RunRepository) Finish(ctx context.Context, run *models.Run) error {
	if run.ID == "" {
		return ErrInvalidRun
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE runs SET clean = ?, backup_dir = ?, finished_at = ? WHERE id = ?
	`,
		boolInt(run.Clean),
		run.BackupDir,
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRunNotFound
	}

	for _, step := range run.Steps {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO run_steps (run_id, number, name, status, message)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, step.Number, step.Name, step.Status, step.Message)
		if err != nil {
			return fmt.Errorf("failed to insert run step: %w", err)
		}
	}

	return tx.Commit()
}

// Get retrieves a run with its steps by ID.
func (r *RunRepository) Get(ctx context.Context, id string) (*models.Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, kind, palette, dry_run, clean, backup_dir, started_at, finished_at
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT number, name, status, message FROM run_steps
		WHERE run_id = ? ORDER BY number
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var step models.RunStep
		if err := rows.Scan(&step.Number, &step.Name, &step.Status, &step.Message); err != nil {
			return nil, fmt.Errorf("failed to scan run step: %w", err)
		}
		run.Steps = append(run.Steps, step)
	}
	return run, rows.Err()
}

// List returns the most recent runs, newest first, without step detail.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, palette, dry_run, clean, backup_dir, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var kind, startedAt string
	var finishedAt sql.NullString
	var dryRun, clean int

	err := row.Scan(&run.ID, &kind, &run.Palette, &dryRun, &clean, &run.BackupDir, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Kind = models.RunKind(kind)
	run.DryRun = dryRun != 0
	run.Clean = clean != 0
	if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if finishedAt.Valid && finishedAt.String != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt.String); err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}
	}
	return &run, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
