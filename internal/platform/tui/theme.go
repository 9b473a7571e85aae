package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

// Theme contains the text styles shared by the story panel, the journey
// panel, the hub and the funnel.
type Theme struct {
	// Panel copy
	Kicker lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Signal lipgloss.Style

	// Calls to action
	Action lipgloss.Style
	Offer  lipgloss.Style

	// Frames
	Panel lipgloss.Style
	Help  lipgloss.Style
}

// DefaultTheme returns the deep-sea palette used everywhere.
func DefaultTheme() Theme {
	return Theme{
		Kicker: lipgloss.NewStyle().Foreground(color(core.ColorTeal)).Bold(true),
		Title:  lipgloss.NewStyle().Foreground(color(core.ColorInk)).Bold(true),
		Body:   lipgloss.NewStyle().Foreground(color(core.ColorInk)),
		Muted:  lipgloss.NewStyle().Foreground(color(core.ColorMuted)),
		Signal: lipgloss.NewStyle().Foreground(color(core.ColorMint)).Italic(true),

		Action: lipgloss.NewStyle().
			Foreground(color(core.ColorDeepSea)).
			Background(color(core.ColorMint)).
			Padding(0, 1),
		Offer: lipgloss.NewStyle().Foreground(color(core.ColorWarning)).Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(core.ColorTeal)),
		Help: lipgloss.NewStyle().Foreground(color(core.ColorMuted)),
	}
}

var styles = DefaultTheme()
