package game

import "github.com/vovakirdan/swarm-beacon/internal/core"

// EventKind identifies a gameplay event. Events are collected during a Step
// and handed to presentation layers (audio, particles on the host, logs);
// they carry no authority over simulation state.
type EventKind int

const (
	EventShotFired EventKind = iota
	EventClumpSpawned
	EventClumpDestroyed
	EventLatched
	EventDetached
	EventEMP
	EventPhaseChanged
	EventRoundAdvanced
	EventOutcome
	EventMuteToggled
)

func (k EventKind) String() string {
	switch k {
	case EventShotFired:
		return "shot_fired"
	case EventClumpSpawned:
		return "clump_spawned"
	case EventClumpDestroyed:
		return "clump_destroyed"
	case EventLatched:
		return "latched"
	case EventDetached:
		return "detached"
	case EventEMP:
		return "emp"
	case EventPhaseChanged:
		return "phase_changed"
	case EventRoundAdvanced:
		return "round_advanced"
	case EventOutcome:
		return "outcome"
	case EventMuteToggled:
		return "mute_toggled"
	default:
		return "unknown"
	}
}

// Event is a flat record; only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind
	Pos  core.Vec2

	ClumpID   uint64
	ClumpType ClumpType
	Tier      Tier
	Children  int

	Detached int // EMP: clumps shaken off the hull
	Repelled int // EMP: free clumps pushed away

	From, To Phase
	Round    int
	Outcome  Outcome
	Muted    bool
}
