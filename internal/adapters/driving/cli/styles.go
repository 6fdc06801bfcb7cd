package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colours shared by all command output.
var (
	colourPrimary = lipgloss.Color("#7C3AED") // Purple
	colourMuted   = lipgloss.Color("#6C7086") // Medium gray
	colourSuccess = lipgloss.Color("#A6E3A1") // Green
	colourWarning = lipgloss.Color("#F9E2AF") // Yellow
	colourError   = lipgloss.Color("#F38BA8") // Red
	colourBorder  = lipgloss.Color("#45475A") // Border gray
)

// styles contains pre-configured lipgloss styles.
type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Label   lipgloss.Style
	Box     lipgloss.Style
}

func newStyles() *styles {
	return &styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colourPrimary),

		Muted: lipgloss.NewStyle().
			Foreground(colourMuted),

		Success: lipgloss.NewStyle().
			Foreground(colourSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(colourWarning),

		Error: lipgloss.NewStyle().
			Foreground(colourError),

		Label: lipgloss.NewStyle().
			Bold(true).
			Width(12),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colourBorder).
			Padding(0, 1),
	}
}

var style = newStyles()
