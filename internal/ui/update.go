package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/ui/models"
	"github.com/Cyclone1070/vsh/internal/ui/views"
)

// reservedRows is the height taken by the input box and status bar.
const reservedRows = 5

// BubbleTeaModel implements tea.Model.
type BubbleTeaModel struct {
	state   models.State
	ctx     context.Context
	runner  Runner
	history *history
}

// resultMsg carries a finished command line back into Update.
type resultMsg struct {
	line   string
	cwd    string
	result command.Result
}

// New creates the REPL model.
func New(ctx context.Context, runner Runner, historySize int) BubbleTeaModel {
	if runner == nil {
		panic("runner is required")
	}

	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Prompt = "$ "
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return BubbleTeaModel{
		state: models.State{
			Cwd:      runner.Cwd(),
			Input:    ti,
			Viewport: viewport.New(80, 20),
			Spinner:  sp,
		},
		ctx:     ctx,
		runner:  runner,
		history: newHistory(historySize),
	}
}

// Init starts the cursor blinking.
func (m BubbleTeaModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = max(msg.Height-reservedRows, 1)
		m.state.Input.Width = max(msg.Width-6, 10)
		m.updateViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Running {
			return m, nil
		}
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.state.Running = false
		m.state.LastExit = msg.result.ExitCode
		m.state.Cwd = m.runner.Cwd()
		m.state.Entries = append(m.state.Entries, models.Entry{
			Cwd:      msg.cwd,
			Line:     msg.line,
			Stdout:   msg.result.Stdout,
			Stderr:   msg.result.Stderr,
			ExitCode: msg.result.ExitCode,
		})
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Viewport, cmd = m.state.Viewport.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

// handleKeyPress handles keyboard input.
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		return m, tea.Quit

	case "ctrl+l":
		m.state.Entries = nil
		m.updateViewport()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		return m, cmd
	}

	// Input is locked while a line runs.
	if m.state.Running {
		return m, nil
	}

	switch msg.String() {
	case "up":
		if line, ok := m.history.prev(); ok {
			m.state.Input.SetValue(line)
			m.state.Input.CursorEnd()
		}
		return m, nil

	case "down":
		m.state.Input.SetValue(m.history.next())
		m.state.Input.CursorEnd()
		return m, nil

	case "enter":
		line := strings.TrimSpace(m.state.Input.Value())
		if line == "" {
			return m, nil
		}
		m.state.Input.SetValue("")
		m.history.push(line)
		if line == "exit" || line == "quit" {
			return m, tea.Quit
		}
		m.state.Running = true
		return m, tea.Batch(m.state.Spinner.Tick, m.execute(line))
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// execute runs a line off the update loop.
func (m BubbleTeaModel) execute(line string) tea.Cmd {
	ctx, runner, cwd := m.ctx, m.runner, m.state.Cwd
	return func() tea.Msg {
		return resultMsg{line: line, cwd: cwd, result: runner.Execute(ctx, line)}
	}
}

// updateViewport refreshes the scrollback and pins it to the bottom.
func (m *BubbleTeaModel) updateViewport() {
	m.state.Viewport.SetContent(views.FormatEntries(m.state.Entries))
	m.state.Viewport.GotoBottom()
}
