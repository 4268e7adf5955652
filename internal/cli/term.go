// Package cli provides terminal capability checks and phase reporting.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// IsNonInteractive reports whether prompts should be skipped and defaults used.
func IsNonInteractive() bool {
	if nonInteractive {
		return true
	}
	if _, ok := os.LookupEnv("HUECTL_NON_INTERACTIVE"); ok {
		return true
	}
	return !hasTTY()
}

// IsInteractive reports whether the session can prompt for user input.
func IsInteractive() bool {
	return !IsNonInteractive()
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// phase reports one long operation as a single stderr line: the label
// when it begins, the outcome with elapsed time when it ends. A nil
// phase is silent, so callers never guard their done/fail calls.
type phase struct {
	out   io.Writer
	start time.Time
}

func beginPhase(label string) *phase {
	if !phasesVisible() {
		return nil
	}
	return newPhase(os.Stderr, label)
}

func newPhase(out io.Writer, label string) *phase {
	fmt.Fprintf(out, "%s... ", label)
	return &phase{out: out, start: time.Now()}
}

// done ends the phase. The detail carries what the operation actually
// touched, e.g. "4 file(s) recolored"; empty means a bare "done".
func (p *phase) done(detail string) {
	if p == nil {
		return
	}
	if detail == "" {
		detail = "done"
	}
	fmt.Fprintf(p.out, "%s in %s\n", detail, phaseElapsed(p.start))
}

func (p *phase) fail(err error) {
	if p == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(p.out, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(p.out, "failed")
}

func phaseElapsed(start time.Time) time.Duration {
	d := time.Since(start)
	if d >= time.Second {
		return d.Round(100 * time.Millisecond)
	}
	return d.Round(time.Millisecond)
}

func phasesVisible() bool {
	if noProgress || IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	for _, key := range []string{"HUECTL_NO_PROGRESS", "NO_PROGRESS"} {
		if _, ok := os.LookupEnv(key); ok {
			return false
		}
	}
	return true
}
