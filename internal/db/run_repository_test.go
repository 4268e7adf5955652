package db

import (
	"context"
	"errors"
	"testing"

	"github.com/huectl/huectl/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatal(err)
	}
	return database
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	database, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	ctx := context.Background()
	applied, err := database.MigrateUp(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if applied == 0 {
		t.Fatal("no migrations applied on fresh database")
	}

	applied, err = database.MigrateUp(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 0 {
		t.Fatalf("second MigrateUp applied %d migrations", applied)
	}
}

func TestRunRepositoryRoundTrip(t *testing.T) {
	repo := NewRunRepository(testDB(t))
	ctx := context.Background()

	run := &models.Run{
		Kind:    models.RunKindInstall,
		Palette: "Blue",
	}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Fatal("Create did not assign an ID")
	}

	run.Clean = true
	run.BackupDir = "/tmp/backups/20260826_120000"
	run.Steps = []models.RunStep{
		{Number: 1, Name: "GNOME Shell Theme", Status: "success"},
		{Number: 2, Name: "GTK4 Theme", Status: "failed", Message: "source missing"},
	}
	if err := repo.Finish(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != models.RunKindInstall || got.Palette != "Blue" {
		t.Errorf("unexpected run: %+v", got)
	}
	if !got.Clean {
		t.Error("Clean flag not persisted")
	}
	if got.FinishedAt.IsZero() {
		t.Error("FinishedAt not persisted")
	}
	if len(got.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(got.Steps))
	}
	if got.Steps[1].Message != "source missing" {
		t.Errorf("step message = %q", got.Steps[1].Message)
	}
}

func TestRunRepositoryValidation(t *testing.T) {
	repo := NewRunRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Run{}); !errors.Is(err, ErrInvalidRun) {
		t.Errorf("Create without kind: %v", err)
	}
	if _, err := repo.Get(ctx, "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get missing run: %v", err)
	}
	if err := repo.Finish(ctx, &models.Run{ID: "nope", Kind: models.RunKindInstall}); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Finish missing run: %v", err)
	}
}

func TestRunRepositoryListNewestFirst(t *testing.T) {
	repo := NewRunRepository(testDB(t))
	ctx := context.Background()

	for _, palette := range []string{"Orange", "Blue", "Green"} {
		if err := repo.Create(ctx, &models.Run{Kind: models.RunKindRecolor, Palette: palette}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	for _, run := range runs {
		if run.Kind != models.RunKindRecolor {
			t.Errorf("unexpected kind %s", run.Kind)
		}
	}
}
