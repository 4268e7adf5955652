package dconf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExec struct {
	calls  [][]string
	inputs []string
	stdout string
	stderr string
	err    error
}

func (f *fakeExec) Exec(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return f.ExecInput(ctx, "", name, args...)
}

func (f *fakeExec) ExecInput(ctx context.Context, input string, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	f.inputs = append(f.inputs, input)
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func TestReadTrimsOutput(t *testing.T) {
	fe := &fakeExec{stdout: "'orange'\n"}
	c := NewClient(fe)

	got, err := c.Read(context.Background(), "/org/gnome/desktop/interface/accent-color")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "'orange'" {
		t.Errorf("got %q, want 'orange'", got)
	}
	want := []string{"dconf", "read", "/org/gnome/desktop/interface/accent-color"}
	if len(fe.calls) != 1 || strings.Join(fe.calls[0], " ") != strings.Join(want, " ") {
		t.Errorf("calls = %v", fe.calls)
	}
}

func TestWriteErrorCarriesDiagnostic(t *testing.T) {
	fe := &fakeExec{stderr: "error: no such key\n", err: errors.New("exit status 1")}
	c := NewClient(fe)

	err := c.Write(context.Background(), "/bad/key", "'x'")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no such key") {
		t.Errorf("error %q missing stderr diagnostic", err)
	}
}

func TestLoadFeedsStdin(t *testing.T) {
	fe := &fakeExec{}
	c := NewClient(fe)

	dump := "[/]\naccent-color='orange'\n"
	if err := c.Load(context.Background(), "/org/gnome/desktop/interface/", dump); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(fe.inputs) != 1 || fe.inputs[0] != dump {
		t.Errorf("stdin = %q", fe.inputs)
	}
	if got := strings.Join(fe.calls[0], " "); got != "dconf load /org/gnome/desktop/interface/" {
		t.Errorf("call = %q", got)
	}
}

func TestResetForcesSubtree(t *testing.T) {
	fe := &fakeExec{}
	c := NewClient(fe)

	if err := c.Reset(context.Background(), "/org/gnome/shell/extensions/blur-my-shell/"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if got := strings.Join(fe.calls[0], " "); got != "dconf reset -f /org/gnome/shell/extensions/blur-my-shell/" {
		t.Errorf("call = %q", got)
	}
}
