package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// HoldDuration is how long a level action stays active after its key is
// seen. Terminals report presses and auto-repeats but never releases, so a
// held key is emulated by refreshing this window on every repeat.
const HoldDuration = 120 * time.Millisecond

// KeyMap defines the key bindings for a run.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Thrust  key.Binding
	Brake   key.Binding
	Fire    key.Binding
	EMP     key.Binding
	Pause   key.Binding
	Mute    key.Binding
	Abort   key.Binding
	Confirm key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Thrust, k.Left, k.Fire, k.EMP, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Thrust, k.Brake},
		{k.Fire, k.EMP, k.Mute},
		{k.Confirm, k.Pause, k.Restart, k.Abort},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "rotate left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "rotate right"),
		),
		Thrust: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "thrust"),
		),
		Brake: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "brake"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fire"),
		),
		EMP: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "emp"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Abort: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "abort"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action maps a key to a game action. It returns ActionNone for keys that
// are not game controls (including help and quit).
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Left):
		return core.ActionRotateLeft
	case key.Matches(msg, k.Right):
		return core.ActionRotateRight
	case key.Matches(msg, k.Thrust):
		return core.ActionThrust
	case key.Matches(msg, k.Brake):
		return core.ActionBrake
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.EMP):
		return core.ActionEMP
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Mute):
		return core.ActionMute
	case key.Matches(msg, k.Abort):
		return core.ActionAbort
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// Holder turns key presses into per-tick input frames. Level actions stay
// active until their hold window lapses; edge actions are delivered on the
// next frame only.
type Holder struct {
	hold  time.Duration
	until map[core.Action]time.Time
	edges []core.Action
}

// NewHolder creates a holder with the given hold window.
func NewHolder(hold time.Duration) *Holder {
	return &Holder{hold: hold, until: make(map[core.Action]time.Time)}
}

// Press records a key press at now.
func (h *Holder) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if a.IsLevel() {
		h.until[a] = now.Add(h.hold)
		return
	}
	h.edges = append(h.edges, a)
}

// Frame returns the intents for a tick at now and consumes pending edges.
func (h *Holder) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, t := range h.until {
		if now.Before(t) {
			f.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	for _, a := range h.edges {
		f.Set(a)
	}
	h.edges = h.edges[:0]
	return f
}

// Release drops every held action, e.g. when the view loses focus.
func (h *Holder) Release() {
	clear(h.until)
	h.edges = h.edges[:0]
}
