// Package ui is the interactive shell: a bubbletea program that reads
// command lines, runs them through one session and keeps a scrollback of
// the results.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/vsh/internal/shell/command"
)

// Runner executes command lines in one session.
type Runner interface {
	Execute(ctx context.Context, line string) command.Result
	Cwd() string
}

// Run starts the REPL and blocks until the user quits or ctx ends.
func Run(ctx context.Context, runner Runner, historySize int) error {
	model := New(ctx, runner, historySize)
	_, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
