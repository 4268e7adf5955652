package cli

import (
	"bytes"
	"testing"

	"github.com/huectl/huectl/internal/steps"
)

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	tbl := newTable(&buf, "ID", "KIND")
	tbl.row("abc12345", "install")
	tbl.row("def", "recolor")
	if err := tbl.flush(); err != nil {
		t.Fatal(err)
	}

	want := "ID        KIND\n" +
		"abc12345  install\n" +
		"def       recolor\n"
	if buf.String() != want {
		t.Errorf("table output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestTableWithoutHeaders(t *testing.T) {
	var buf bytes.Buffer
	tbl := newTable(&buf)
	tbl.row("Distro", "Bazzite")
	if err := tbl.flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Distro  Bazzite\n" {
		t.Errorf("table output = %q", buf.String())
	}
}

func TestFormatYesNo(t *testing.T) {
	if formatYesNo(true) != "yes" || formatYesNo(false) != "no" {
		t.Errorf("formatYesNo: got %q/%q", formatYesNo(true), formatYesNo(false))
	}
}

func TestFormatStepStatusPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		status steps.Status
		want   string
	}{
		{steps.StatusSuccess, "SUCCESS"},
		{steps.StatusSkipped, "SKIPPED"},
		{steps.StatusFailed, "FAILED"},
		{steps.StatusPending, "PENDING"},
		{steps.Status("unheard-of"), "PENDING"},
	}
	for _, tt := range tests {
		if got := formatStepStatus(tt.status); got != tt.want {
			t.Errorf("formatStepStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
