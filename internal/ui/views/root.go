// Package views renders REPL state into strings for bubbletea.
package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/vsh/internal/ui/models"
)

// RenderRoot renders the complete UI layout.
func RenderRoot(s models.State) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderTranscript(s),
		InputStyle.Render(s.Input.View()),
		RenderStatus(s),
	)
}
