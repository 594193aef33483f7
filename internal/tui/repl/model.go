package repl

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basedlol/ty/internal/client"
	"github.com/basedlol/ty/internal/invoke"
)

const maxTranscript = 100

// entry is one submitted snippet and its outcome.
type entry struct {
	code    string
	output  string
	err     error
	pending bool
}

type resultMsg struct {
	output string
	err    error
}

// Model is the main BubbleTea model for the repl TUI.
type Model struct {
	runner client.Runner

	width  int
	height int

	input      textinput.Model
	transcript []entry
	waiting    bool

	theme Theme
}

// New creates a new repl TUI model.
func New(runner client.Runner) *Model {
	ti := textinput.New()
	ti.Placeholder = "code, optionally with -stdin=<input>"
	ti.Prompt = "ty> "
	ti.Focus()

	return &Model{
		runner:     runner,
		input:      ti,
		transcript: make([]entry, 0),
		theme:      NewDefaultTheme(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			if m.waiting || strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.transcript = append(m.transcript, entry{code: line, pending: true})
			if len(m.transcript) > maxTranscript {
				m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
			}
			m.waiting = true
			m.input.Reset()
			return m, submit(m.runner, line)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resultMsg:
		if n := len(m.transcript); n > 0 && m.transcript[n-1].pending {
			m.transcript[n-1].output = msg.output
			m.transcript[n-1].err = msg.err
			m.transcript[n-1].pending = false
		}
		m.waiting = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("ty repl"))
	b.WriteString(m.theme.Dim.Render("  (enter submits, ctrl+c quits)"))
	b.WriteString("\n\n")

	for _, e := range m.transcript {
		b.WriteString(m.theme.Prompt.Render("ty> "))
		b.WriteString(m.theme.Code.Render(e.code))
		b.WriteString("\n")
		switch {
		case e.pending:
			b.WriteString(m.theme.Dim.Render("..."))
		case e.err != nil:
			b.WriteString(m.theme.Error.Render(e.err.Error()))
		default:
			b.WriteString(m.theme.Output.Render(e.output))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

// submit sends one line through the runner. The line gets the same treatment
// as a command-line invocation: `\n` substitution and the -stdin= split.
func submit(runner client.Runner, line string) tea.Cmd {
	return func() tea.Msg {
		out, err := runner.Run(context.Background(), invoke.Parse([]string{line}))
		return resultMsg{output: out, err: err}
	}
}
