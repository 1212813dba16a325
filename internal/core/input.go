package core

// Action represents a semantic player intent, abstracted from physical keys.
// Level actions are true for every tick the control is held; edge actions
// are set only on the tick the control was pressed.
type Action int

const (
	ActionNone        Action = iota
	ActionRotateLeft         // level: A, Left arrow
	ActionRotateRight        // level: D, Right arrow
	ActionThrust             // level: W, Up arrow
	ActionBrake              // level: S, Down arrow
	ActionFire               // level: Space
	ActionEMP                // edge: E
	ActionPause              // edge: P, Esc
	ActionMute               // edge: M
	ActionAbort              // edge: X
	ActionConfirm            // edge: Enter
	ActionRestart            // edge: R
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionThrust:
		return "Thrust"
	case ActionBrake:
		return "Brake"
	case ActionFire:
		return "Fire"
	case ActionEMP:
		return "EMP"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	case ActionAbort:
		return "Abort"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// IsLevel reports whether the action is held rather than pressed.
func (a Action) IsLevel() bool {
	switch a {
	case ActionRotateLeft, ActionRotateRight, ActionThrust, ActionBrake, ActionFire:
		return true
	default:
		return false
	}
}

// InputFrame represents the intents for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// ClearEdges drops the pressed-once actions and keeps held ones.
func (f *InputFrame) ClearEdges() {
	for k := range f.Actions {
		if !k.IsLevel() {
			delete(f.Actions, k)
		}
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
