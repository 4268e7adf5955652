// Package tui implements the interactive install progress view.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huectl/huectl/internal/tui/styles"
)

// StepStartedMsg reports that a step began executing.
type StepStartedMsg struct {
	Index  int
	Total  int
	Number int
	Name   string
}

// StepFinishedMsg reports a step's terminal outcome.
type StepFinishedMsg struct {
	Index   int
	Total   int
	Number  int
	Name    string
	Status  string
	Message string
}

// RunDoneMsg ends the program once every step has reported.
type RunDoneMsg struct {
	Err error
}

type stepLine struct {
	number  int
	name    string
	status  string
	message string
}

type progressModel struct {
	styles  styles.Styles
	width   int
	total   int
	current string
	lines   []stepLine
	done    bool
	err     error
}

func newProgressModel(theme string) progressModel {
	t, ok := styles.Themes[theme]
	if !ok {
		t = styles.DefaultTheme
	}
	return progressModel{styles: styles.BuildStyles(t)}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case StepStartedMsg:
		m.total = msg.Total
		m.current = fmt.Sprintf("[%d/%d] %s", msg.Index+1, msg.Total, msg.Name)
	case StepFinishedMsg:
		m.total = msg.Total
		m.current = ""
		m.lines = append(m.lines, stepLine{
			number:  msg.Number,
			name:    msg.Name,
			status:  msg.Status,
			message: msg.Message,
		})
	case RunDoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Installing theme components"))
	b.WriteString("\n\n")

	for _, line := range m.lines {
		b.WriteString(fmt.Sprintf("  %s %s",
			m.statusBadge(line.status),
			m.styles.Text.Render(fmt.Sprintf("%2d  %s", line.number, line.name))))
		if line.message != "" {
			b.WriteString(m.styles.Muted.Render("  " + line.message))
		}
		b.WriteString("\n")
	}

	if m.current != "" {
		b.WriteString(m.styles.Accent.Render("  > " + m.current))
		b.WriteString("\n")
	}

	if m.total > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d/%d steps finished", len(m.lines), m.total)))
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(m.styles.Muted.Render("Press ctrl+c to abandon the view (the run continues)."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m progressModel) statusBadge(status string) string {
	switch status {
	case "success":
		return m.styles.Success.Render("ok  ")
	case "skipped":
		return m.styles.Warning.Render("skip")
	case "failed":
		return m.styles.Error.Render("FAIL")
	default:
		return m.styles.Muted.Render("....")
	}
}

// Progress drives the progress program. Events arrive from the run
// goroutine through Send while the program owns the terminal.
type Progress struct {
	program *tea.Program
}

// NewProgress builds the progress UI with the named style theme.
func NewProgress(theme string) *Progress {
	return &Progress{program: tea.NewProgram(newProgressModel(theme))}
}

// Send forwards an event to the running view. Safe from any goroutine.
func (p *Progress) Send(msg tea.Msg) {
	p.program.Send(msg)
}

// Finish tells the view the run ended.
func (p *Progress) Finish(err error) {
	p.program.Send(RunDoneMsg{Err: err})
}

// Wait runs the program until Finish or the user quits.
func (p *Progress) Wait() error {
	_, err := p.program.Run()
	return err
}
