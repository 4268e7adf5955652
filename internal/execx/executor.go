// Package execx provides bounded execution of external commands.
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds external commands that do not carry their own deadline.
const DefaultTimeout = 120 * time.Second

// Executor runs external commands and captures their output.
type Executor interface {
	Exec(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
	ExecInput(ctx context.Context, input string, name string, args ...string) (stdout, stderr []byte, err error)
}

// Local runs commands on the local host.
type Local struct {
	// Timeout applies when the caller's context has no deadline.
	Timeout time.Duration
}

// NewLocal creates a local executor with the default timeout.
func NewLocal() *Local {
	return &Local{Timeout: DefaultTimeout}
}

// Exec runs a command and returns captured stdout/stderr.
func (l *Local) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return l.ExecInput(ctx, "", name, args...)
}

// ExecInput runs a command feeding input on stdin.
func (l *Local) ExecInput(ctx context.Context, input string, name string, args ...string) ([]byte, []byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		timeout := l.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Ok runs a command and reports whether it exited zero.
func Ok(ctx context.Context, e Executor, name string, args ...string) bool {
	_, _, err := e.Exec(ctx, name, args...)
	return err == nil
}

// Output runs a command and returns trimmed stdout, or "" on failure.
func Output(ctx context.Context, e Executor, name string, args ...string) string {
	stdout, _, err := e.Exec(ctx, name, args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(stdout))
}

// Diagnostic condenses stderr into a short single-line message suitable
// for step results.
func Diagnostic(stderr []byte, max int) string {
	s := strings.TrimSpace(string(stderr))
	s = strings.ReplaceAll(s, "\n", " ")
	if max > 0 && len(s) > max {
		return s[:max] + "..."
	}
	return s
}
