// Package bot provides an autopilot that plays the game from snapshots. It is
// used by the headless batch runner and as a demo mode in the terminal UI.
package bot

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
)

// Profile tunes the autopilot.
type Profile struct {
	BulletSpeed   float64 // used to lead moving targets
	AimTolerance  float64 // radians; fire when the target is this close to the nose
	TurnDeadZone  float64 // radians; no rotation inside this
	PanicDistance float64 // free clumps closer than this trigger evasive thrust
	EMPLatched    int     // fire EMP at this many latched clumps
	EMPAssim      float64 // or when assimilation reaches this with anything latched
	AutoAdvance   bool    // press confirm on title and round-complete screens
}

// DefaultProfile is a competent but beatable pilot.
func DefaultProfile() Profile {
	return Profile{
		BulletSpeed:   720,
		AimTolerance:  0.12,
		TurnDeadZone:  0.04,
		PanicDistance: 90,
		EMPLatched:    2,
		EMPAssim:      35,
		AutoAdvance:   true,
	}
}

// Pilot turns snapshots into intents. It holds no game state beyond the
// previous frame's edge presses, which it never repeats on consecutive
// frames so that edge intents stay edges.
type Pilot struct {
	profile Profile
	pressed map[core.Action]bool
}

// NewPilot creates an autopilot with the given profile.
func NewPilot(p Profile) *Pilot {
	return &Pilot{profile: p, pressed: make(map[core.Action]bool)}
}

// Decide returns the intents for the next tick.
func (p *Pilot) Decide(snap *game.Snapshot) core.InputFrame {
	f := core.NewInputFrame()
	switch snap.Phase {
	case game.PhaseTitle, game.PhaseRoundComplete:
		if p.profile.AutoAdvance {
			p.edge(&f, core.ActionConfirm)
		}
	case game.PhasePlaying:
		p.fly(&f, snap)
	default:
	}
	p.remember(f)
	return f
}

func (p *Pilot) fly(f *core.InputFrame, snap *game.Snapshot) {
	ship := snap.Ship
	latched := 0
	for _, c := range snap.Clumps {
		if c.Latched {
			latched++
		}
	}
	if latched > 0 && snap.EMPCooldown <= 0 && snap.EMPCharges != 0 &&
		(latched >= p.profile.EMPLatched || snap.Meters.Assimilation >= p.profile.EMPAssim) {
		p.edge(f, core.ActionEMP)
	}

	target, threat, ok := p.pickTarget(snap)
	if !ok {
		f.Set(core.ActionBrake)
		return
	}
	if threat < p.profile.PanicDistance {
		f.Set(core.ActionThrust)
	}

	aim := math.Atan2(target.Y, target.X)
	diff := angleDiff(ship.Heading, aim)
	switch {
	case diff > p.profile.TurnDeadZone:
		f.Set(core.ActionRotateRight)
	case diff < -p.profile.TurnDeadZone:
		f.Set(core.ActionRotateLeft)
	}
	if math.Abs(diff) <= p.profile.AimTolerance {
		f.Set(core.ActionFire)
	}
}

// pickTarget returns the lead-corrected vector from ship to the nearest free
// clump, and the distance to that clump.
func (p *Pilot) pickTarget(snap *game.Snapshot) (core.Vec2, float64, bool) {
	ship := snap.Ship
	best := math.Inf(1)
	var aim core.Vec2
	found := false
	for _, c := range snap.Clumps {
		if c.Latched || c.Dead {
			continue
		}
		d := core.WrapDelta(ship.Pos, c.Pos, snap.WorldW, snap.WorldH)
		dist := d.Len() - c.Radius
		if dist >= best {
			continue
		}
		best = dist
		found = true
		lead := 0.0
		if p.profile.BulletSpeed > 0 {
			lead = d.Len() / p.profile.BulletSpeed
		}
		aim = d.Add(c.Vel.Sub(ship.Vel).Scale(lead))
	}
	return aim, best, found
}

// edge sets a press only if it was not already held last frame.
func (p *Pilot) edge(f *core.InputFrame, a core.Action) {
	if !p.pressed[a] {
		f.Set(a)
	}
}

func (p *Pilot) remember(f core.InputFrame) {
	for _, a := range []core.Action{core.ActionConfirm, core.ActionEMP} {
		p.pressed[a] = f.Has(a)
	}
}

// angleDiff returns the signed shortest rotation from a to b in (-π, π].
func angleDiff(a, b float64) float64 {
	d := math.Remainder(b-a, 2*math.Pi)
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
