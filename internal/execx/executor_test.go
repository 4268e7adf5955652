package execx

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestLocalExecCapturesStdout(t *testing.T) {
	e := NewLocal()

	stdout, stderr, err := e.Exec(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if got := strings.TrimSpace(string(stdout)); got != "hello" {
		t.Errorf("stdout = %q", got)
	}
	if len(stderr) != 0 {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestLocalExecInput(t *testing.T) {
	e := NewLocal()

	stdout, _, err := e.ExecInput(context.Background(), "piped\n", "cat")
	if err != nil {
		t.Fatalf("ExecInput failed: %v", err)
	}
	if string(stdout) != "piped\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestLocalExecTimeout(t *testing.T) {
	e := &Local{Timeout: 50 * time.Millisecond}

	start := time.Now()
	_, _, err := e.Exec(context.Background(), "sleep", "10")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("command was not bounded, ran %v", elapsed)
	}
}

func TestOk(t *testing.T) {
	e := NewLocal()

	if !Ok(context.Background(), e, "true") {
		t.Error("true should report ok")
	}
	if Ok(context.Background(), e, "false") {
		t.Error("false should not report ok")
	}
}

func TestOutput(t *testing.T) {
	e := NewLocal()

	if got := Output(context.Background(), e, "echo", "  spaced  "); got != "spaced" {
		t.Errorf("got %q, want trimmed output", got)
	}
	if got := Output(context.Background(), e, "false"); got != "" {
		t.Errorf("failed command output = %q, want empty", got)
	}
}

func TestDiagnostic(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"  error: bad thing\n", 100, "error: bad thing"},
		{"line one\nline two", 100, "line one line two"},
		{"aaaaaaaaaa", 4, "aaaa..."},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := Diagnostic([]byte(tt.in), tt.max); got != tt.want {
			t.Errorf("Diagnostic(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
