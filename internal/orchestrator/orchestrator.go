// Package orchestrator runs a selected sequence of install steps under
// a failure policy.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/steps"
	"github.com/huectl/huectl/internal/sysinfo"
)

// ErrAborted is returned when the failure policy stops the run early.
// Results for the steps executed so far are still returned.
var ErrAborted = errors.New("run aborted")

// Decision is the policy's answer to a failed step.
type Decision int

const (
	// DecisionFail records the failure and moves on to the next step.
	DecisionFail Decision = iota
	// DecisionRetry runs the same step again.
	DecisionRetry
	// DecisionSkip records the step as skipped and moves on.
	DecisionSkip
	// DecisionAbort stops the run.
	DecisionAbort
)

// Policy decides how to proceed after a step fails. It is consulted for
// unexpected errors and for results with a failed status alike.
type Policy func(step steps.Step, err error) Decision

// NonInteractive records failures and continues. It is the policy for
// unattended runs.
func NonInteractive(_ steps.Step, _ error) Decision { return DecisionFail }

// Event reports progress to an observer as the run advances.
type Event struct {
	Step   steps.Step
	Index  int
	Total  int
	Result *steps.Result
}

// Observer receives an event when a step starts (Result nil) and when
// it finishes (Result set).
type Observer func(Event)

// Runner executes steps strictly in sequence, one at a time.
type Runner struct {
	Info    *sysinfo.Info
	Backup  *backup.Manager
	DryRun  bool
	Policy  Policy
	Observe Observer
	Logger  zerolog.Logger
}

// Run executes the selected steps in order. Every selected step ends up
// with exactly one result, whatever its fate. The manifest is saved
// before returning, including on abort, so partial progress stays
// restorable.
func (r *Runner) Run(ctx context.Context, selected []steps.Step) ([]steps.Result, error) {
	policy := r.Policy
	if policy == nil {
		policy = NonInteractive
	}

	results := make([]steps.Result, 0, len(selected))
	aborted := false

	for i, step := range selected {
		if err := ctx.Err(); err != nil {
			results = append(results, pending(step))
			continue
		}
		if aborted {
			results = append(results, pending(step))
			continue
		}

		r.notify(Event{Step: step, Index: i, Total: len(selected)})
		r.Logger.Info().Int("step", step.Number()).Str("name", step.Name()).Msg("running step")

		res := r.runOne(ctx, step, policy, &aborted)
		results = append(results, res)

		r.notify(Event{Step: step, Index: i, Total: len(selected), Result: &res})
		r.Logger.Info().
			Int("step", step.Number()).
			Str("status", string(res.Status)).
			Str("message", res.Message).
			Msg("step finished")
	}

	if err := r.Backup.SaveManifest(); err != nil {
		r.Logger.Error().Err(err).Msg("saving manifest failed")
	}

	if aborted {
		return results, ErrAborted
	}
	return results, nil
}

// runOne executes a single step, consulting the policy until it settles
// on a terminal result.
func (r *Runner) runOne(ctx context.Context, step steps.Step, policy Policy, aborted *bool) steps.Result {
	for {
		res, err := r.install(ctx, step)
		if err == nil && res.Status != steps.StatusFailed {
			return res
		}

		if err != nil {
			r.Logger.Error().Err(err).Int("step", step.Number()).Msg("step error")
			res = steps.Result{
				Number:  step.Number(),
				Name:    step.Name(),
				Status:  steps.StatusFailed,
				Message: err.Error(),
			}
		}

		switch policy(step, err) {
		case DecisionRetry:
			continue
		case DecisionSkip:
			res.Status = steps.StatusSkipped
			return res
		case DecisionAbort:
			*aborted = true
			return res
		default:
			return res
		}
	}
}

// install invokes the step, converting a panic into an error so one
// broken step cannot take down the whole run.
func (r *Runner) install(ctx context.Context, step steps.Step) (res steps.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("step %d panicked: %v", step.Number(), rec)
		}
	}()
	return step.Install(ctx, r.Info, r.Backup, r.DryRun)
}

func (r *Runner) notify(ev Event) {
	if r.Observe != nil {
		r.Observe(ev)
	}
}

func pending(step steps.Step) steps.Result {
	return steps.Result{
		Number:  step.Number(),
		Name:    step.Name(),
		Status:  steps.StatusPending,
		Message: "not run",
	}
}

// Clean reports whether a run had no failed steps. Skipped and pending
// results do not count against it.
func Clean(results []steps.Result) bool {
	for _, res := range results {
		if res.Status == steps.StatusFailed {
			return false
		}
	}
	return true
}
