// Package cli provides output mode helpers shared by all commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether --jsonl was requested.
func IsJSONLOutput() bool {
	return jsonlOutput
}

// WriteOutput serializes a value for machine consumption. JSON mode
// pretty-prints; JSONL mode emits one compact line.
func WriteOutput(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	if !jsonlOutput {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(value)
}

// PreflightError is a user-facing failure detected before any work
// started, with a hint on how to proceed.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	return e.Message
}

func printCommandError(err error) {
	var preflight *PreflightError
	if errors.As(err, &preflight) {
		fmt.Fprintf(os.Stderr, "error: %s\n", preflight.Message)
		if preflight.Hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", preflight.Hint)
		}
		if preflight.NextStep != "" {
			fmt.Fprintf(os.Stderr, "next: %s\n", preflight.NextStep)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
