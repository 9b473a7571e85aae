package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

// color converts an RGB value to a lipgloss truecolor.
func color(c core.RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// cellStyle returns the style for a run of cells sharing colors.
func cellStyle(c core.Cell) lipgloss.Style {
	if !c.Styled {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(color(c.FG)).Background(color(c.BG))
}

func sameStyle(a, b core.Cell) bool {
	if a.Styled != b.Styled {
		return false
	}
	return !a.Styled || (a.FG == b.FG && a.BG == b.BG)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !sameStyle(cell, start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cellStyle(start).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
