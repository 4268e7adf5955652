package models

import "time"

// RunKind identifies what a recorded run did.
type RunKind string

const (
	RunKindInstall RunKind = "install"
	RunKindRecolor RunKind = "recolor"
	RunKindRestore RunKind = "restore"
)

// Run is one recorded invocation of an installing or recoloring
// operation.
type Run struct {
	// ID is the unique identifier for the run.
	ID string `json:"id"`

	// Kind is the operation this run performed.
	Kind RunKind `json:"kind"`

	// Palette is the palette involved, if any.
	Palette string `json:"palette,omitempty"`

	// DryRun marks runs that performed no mutation.
	DryRun bool `json:"dry_run"`

	// Clean reports whether every step finished successfully.
	Clean bool `json:"clean"`

	// BackupDir is the backup created for the run, empty for dry runs.
	BackupDir string `json:"backup_dir,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended; zero while in progress.
	FinishedAt time.Time `json:"finished_at,omitempty"`

	// Steps holds the per-step outcomes, in execution order.
	Steps []RunStep `json:"steps,omitempty"`
}

// RunStep is the recorded outcome of one step within a run.
type RunStep struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
