package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/dconf"
	"github.com/huectl/huectl/internal/steps"
	"github.com/huectl/huectl/internal/sysinfo"
)

type fakeStep struct {
	number   int
	name     string
	installs int
	result   steps.Status
	err      error
	panics   bool
}

func (f *fakeStep) Number() int                      { return f.number }
func (f *fakeStep) Name() string                     { return f.name }
func (f *fakeStep) RequiresSudo() bool               { return false }
func (f *fakeStep) IsInstalled(_ *sysinfo.Info) bool { return false }
func (f *fakeStep) Verify(_ *sysinfo.Info) bool      { return true }
func (f *fakeStep) Uninstall(_ *sysinfo.Info) bool   { return true }

func (f *fakeStep) Install(_ context.Context, _ *sysinfo.Info, _ *backup.Manager, _ bool) (steps.Result, error) {
	f.installs++
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return steps.Result{}, f.err
	}
	status := f.result
	if status == "" {
		status = steps.StatusSuccess
	}
	return steps.Result{Number: f.number, Name: f.name, Status: status}, nil
}

type nopExec struct{}

func (nopExec) Exec(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	return nil, nil, nil
}

func (nopExec) ExecInput(_ context.Context, _, _ string, _ ...string) ([]byte, []byte, error) {
	return nil, nil, nil
}

func testRunner(t *testing.T, policy Policy) *Runner {
	t.Helper()
	bk := backup.NewManager(t.TempDir(), t.TempDir(), dconf.NewClient(nopExec{}), backup.ModeWrite, zerolog.Nop())
	if err := bk.Init(); err != nil {
		t.Fatal(err)
	}
	return &Runner{
		Info:   &sysinfo.Info{Home: t.TempDir()},
		Backup: bk,
		Policy: policy,
		Logger: zerolog.Nop(),
	}
}

func TestRunEveryStepGetsOneResult(t *testing.T) {
	r := testRunner(t, nil)
	selected := []steps.Step{
		&fakeStep{number: 1, name: "a"},
		&fakeStep{number: 2, name: "b", err: errors.New("broken")},
		&fakeStep{number: 3, name: "c"},
	}

	results, err := r.Run(context.Background(), selected)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(selected) {
		t.Fatalf("got %d results for %d steps", len(results), len(selected))
	}
	for i, res := range results {
		if res.Number != selected[i].Number() {
			t.Errorf("result %d has number %d", i, res.Number)
		}
	}
	if results[1].Status != steps.StatusFailed {
		t.Errorf("failing step status = %s", results[1].Status)
	}
	if Clean(results) {
		t.Error("Clean() = true with a failed step")
	}
}

func TestRunRetryPolicy(t *testing.T) {
	flaky := &fakeStep{number: 1, name: "flaky", err: errors.New("transient")}

	attempts := 0
	r := testRunner(t, func(_ steps.Step, _ error) Decision {
		attempts++
		if attempts < 3 {
			return DecisionRetry
		}
		flaky.err = nil
		return DecisionRetry
	})

	results, err := r.Run(context.Background(), []steps.Step{flaky})
	if err != nil {
		t.Fatal(err)
	}
	if flaky.installs != 4 {
		t.Errorf("installs = %d, want 4", flaky.installs)
	}
	if results[0].Status != steps.StatusSuccess {
		t.Errorf("status = %s after successful retry", results[0].Status)
	}
}

func TestRunSkipPolicy(t *testing.T) {
	r := testRunner(t, func(_ steps.Step, _ error) Decision { return DecisionSkip })

	results, err := r.Run(context.Background(), []steps.Step{
		&fakeStep{number: 1, name: "bad", err: errors.New("nope")},
		&fakeStep{number: 2, name: "good"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != steps.StatusSkipped {
		t.Errorf("skipped step status = %s", results[0].Status)
	}
	if results[1].Status != steps.StatusSuccess {
		t.Errorf("following step status = %s", results[1].Status)
	}
}

func TestRunAbortStopsRemainingSteps(t *testing.T) {
	later := &fakeStep{number: 3, name: "later"}
	r := testRunner(t, func(_ steps.Step, _ error) Decision { return DecisionAbort })

	results, err := r.Run(context.Background(), []steps.Step{
		&fakeStep{number: 1, name: "ok"},
		&fakeStep{number: 2, name: "bad", err: errors.New("nope")},
		later,
	})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if later.installs != 0 {
		t.Error("step after abort was executed")
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[2].Status != steps.StatusPending {
		t.Errorf("unreached step status = %s", results[2].Status)
	}
}

func TestCleanCountsOnlyFailures(t *testing.T) {
	clean := []steps.Result{
		{Number: 1, Status: steps.StatusSuccess},
		{Number: 2, Status: steps.StatusSkipped},
		{Number: 3, Status: steps.StatusPending},
	}
	if !Clean(clean) {
		t.Error("Clean() = false for a run with no failed steps")
	}

	dirty := []steps.Result{
		{Number: 1, Status: steps.StatusSkipped},
		{Number: 2, Status: steps.StatusFailed},
	}
	if Clean(dirty) {
		t.Error("Clean() = true with a failed step")
	}
}

func TestRunRecoversPanics(t *testing.T) {
	r := testRunner(t, nil)

	results, err := r.Run(context.Background(), []steps.Step{
		&fakeStep{number: 1, name: "panicky", panics: true},
		&fakeStep{number: 2, name: "after"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != steps.StatusFailed {
		t.Errorf("panicking step status = %s", results[0].Status)
	}
	if results[1].Status != steps.StatusSuccess {
		t.Errorf("step after panic status = %s", results[1].Status)
	}
}
