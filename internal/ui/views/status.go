package views

import (
	"fmt"

	"github.com/Cyclone1070/vsh/internal/ui/models"
)

// RenderStatus renders the status bar: run state on the left, cwd on the
// right.
func RenderStatus(s models.State) string {
	var left string
	switch {
	case s.Running:
		left = StatusRunningStyle.Render(s.Spinner.View() + " running")
	case s.LastExit != 0:
		left = StatusFailStyle.Render(fmt.Sprintf("✘ exit %d", s.LastExit))
	default:
		left = StatusOKStyle.Render("Ready")
	}

	if s.Cwd == "" {
		return left
	}
	return fmt.Sprintf("%s  %s", left, StatusDimStyle.Render(s.Cwd))
}
