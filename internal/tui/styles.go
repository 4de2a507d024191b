package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for a theme
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	HandInfo  lipgloss.Style
	Actions   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Seat      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Pane      lipgloss.Style
}

// NewStyles builds the style set for a theme name. Unknown themes fall back
// to the default palette.
func NewStyles(theme string) Styles {
	accent := lipgloss.Color("#7D56F4")
	text := lipgloss.Color("#FAFAFA")
	black := lipgloss.Color("#000000")
	dim := lipgloss.Color("#626262")

	switch theme {
	case "dark":
		black = lipgloss.Color("#BBBBBB")
	case "light":
		text = lipgloss.Color("#1A1A1A")
		dim = lipgloss.Color("#8A8A8A")
	}

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(text).
			Background(accent).
			Padding(0, 1).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(text).
			Bold(true),

		HandInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Actions: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),

		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		BlackCard: lipgloss.NewStyle().
			Foreground(black).
			Bold(true),

		Hidden: lipgloss.NewStyle().
			Foreground(dim),

		Seat: lipgloss.NewStyle().
			Foreground(text),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(dim),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1),
	}
}
