package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/ui/models"
)

const welcome = "vsh: type a command and press Enter. Try help, ls or grep -rn TODO. Ctrl+C or exit quits."

// RenderTranscript renders the scrollback, or a welcome line when empty.
func RenderTranscript(s models.State) string {
	if len(s.Entries) == 0 {
		return welcome
	}
	return s.Viewport.View()
}

// FormatEntries formats the entries for the viewport.
func FormatEntries(entries []models.Entry) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, FormatEntry(e))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatEntry renders a prompt line followed by the command's output.
func FormatEntry(e models.Entry) string {
	lines := []string{PromptStyle.Render(e.Cwd+" $") + " " + e.Line}
	if e.Stdout != "" {
		lines = append(lines, e.Stdout)
	}
	if e.Stderr != "" {
		lines = append(lines, StderrStyle.Render(e.Stderr))
	}
	if e.ExitCode != 0 {
		lines = append(lines, ExitStyle.Render(fmt.Sprintf("[exit %d]", e.ExitCode)))
	}
	return strings.Join(lines, "\n")
}
