// Package tui runs the game in a terminal with Bubble Tea: the tick loop,
// key handling, rendering, and the SSH front door.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDT converts the wall-clock gap between ticks into a simulation step.
// The first tick, and any tick whose clock went backwards, uses the nominal
// interval. The game clamps long gaps itself.
func frameDT(prev, now time.Time, tickRate int) float64 {
	nominal := 1 / float64(tickRate)
	if prev.IsZero() || !now.After(prev) {
		return nominal
	}
	return now.Sub(prev).Seconds()
}
