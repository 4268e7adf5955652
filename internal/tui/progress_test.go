package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func apply(t *testing.T, m progressModel, msgs ...tea.Msg) progressModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(progressModel)
	}
	return m
}

func TestProgressModelTracksSteps(t *testing.T) {
	m := newProgressModel("default")

	m = apply(t, m,
		StepStartedMsg{Index: 0, Total: 3, Number: 1, Name: "GNOME Shell Theme"},
		StepFinishedMsg{Index: 0, Total: 3, Number: 1, Name: "GNOME Shell Theme", Status: "success"},
		StepStartedMsg{Index: 1, Total: 3, Number: 2, Name: "GTK4 Theme"},
	)

	view := m.View()
	if !strings.Contains(view, "GNOME Shell Theme") {
		t.Error("finished step missing from view")
	}
	if !strings.Contains(view, "[2/3] GTK4 Theme") {
		t.Error("current step missing from view")
	}
	if !strings.Contains(view, "1/3 steps finished") {
		t.Errorf("progress counter missing from view:\n%s", view)
	}
}

func TestProgressModelFailureBadge(t *testing.T) {
	m := newProgressModel("default")
	m = apply(t, m, StepFinishedMsg{Total: 1, Number: 5, Name: "Fastfetch Config", Status: "failed", Message: "source missing"})

	view := m.View()
	if !strings.Contains(view, "FAIL") {
		t.Error("failed badge missing")
	}
	if !strings.Contains(view, "source missing") {
		t.Error("failure message missing")
	}
}

func TestProgressModelQuitsOnDone(t *testing.T) {
	m := newProgressModel("default")
	next, cmd := m.Update(RunDoneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(progressModel).done {
		t.Error("model not marked done")
	}
}

func TestProgressModelUnknownThemeFallsBack(t *testing.T) {
	m := newProgressModel("no-such-theme")
	if m.styles.Theme.Name != "default" {
		t.Errorf("theme = %q, want default", m.styles.Theme.Name)
	}
}
