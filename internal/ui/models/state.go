// Package models holds the REPL's view state.
package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Entry is one executed command line and its outcome.
type Entry struct {
	Cwd      string
	Line     string
	Stdout   string
	Stderr   string
	ExitCode int
}

// State is everything the views render.
type State struct {
	Width  int
	Height int

	Cwd      string
	Running  bool
	LastExit int

	Entries  []Entry
	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model
}
