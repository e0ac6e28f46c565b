package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("12")
	ColorError   = lipgloss.Color("9")
	ColorSuccess = lipgloss.Color("10")
	ColorDim     = lipgloss.Color("241")

	PromptStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StderrStyle = lipgloss.NewStyle().Foreground(ColorError)
	ExitStyle   = lipgloss.NewStyle().Foreground(ColorError).Faint(true)
	InputStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	StatusRunningStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatusOKStyle      = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusFailStyle    = lipgloss.NewStyle().Foreground(ColorError)
	StatusDimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
)
