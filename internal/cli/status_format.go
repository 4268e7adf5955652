// Package cli provides formatting helpers for human-readable output.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/huectl/huectl/internal/steps"
)

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
	colorReset  = "\033[0m"
)

func formatStepStatus(status steps.Status) string {
	label, color := statusLabel(status)
	return colorize(label, color)
}

func statusLabel(status steps.Status) (string, string) {
	switch status {
	case steps.StatusSuccess:
		return "SUCCESS", colorGreen
	case steps.StatusSkipped:
		return "SKIPPED", colorYellow
	case steps.StatusFailed:
		return "FAILED", colorRed
	default:
		return "PENDING", colorGray
	}
}

func colorize(text, color string) string {
	if !colorEnabled() {
		return text
	}
	return fmt.Sprintf("%s%s%s", color, text, colorReset)
}

func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return hasTTY()
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// table accumulates aligned rows; nothing reaches the writer until
// flush, so column widths settle over the whole set.
type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, headers ...string) *table {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
	}
	return &table{w: w}
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}
