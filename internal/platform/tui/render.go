package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// colorStyles maps each core.Color to a lipgloss style. Alerts and the
// beacon are drawn bold.
var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, core.NumColors)
	for i := range core.NumColors {
		c := core.Color(i) //#nosec G115 -- NumColors fits in a byte
		style := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		if c == core.ColorBrightRed || c == core.ColorBrightCyan {
			style = style.Bold(true)
		}
		styles[c] = style
	}
	return styles
}

// Renderer turns a Screen into a styled string.
type Renderer struct {
	styles map[core.Color]lipgloss.Style
	mono   bool
}

// NewRenderer creates a renderer. A mono renderer emits plain text, which
// SSH clients without colour support and golden tests both rely on.
func NewRenderer(mono bool) *Renderer {
	return &Renderer{styles: colorStyles, mono: mono}
}

// Render converts a Screen buffer to a string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (r *Renderer) Render(s *core.Screen) string {
	if r.mono {
		return s.String()
	}
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			style, ok := r.styles[color]
			if !ok || color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
