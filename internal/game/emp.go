package game

import "github.com/vovakirdan/swarm-beacon/internal/core"

// EMPReady reports whether an EMP would fire this tick.
func (g *Game) EMPReady() bool {
	return g.ship.EMPCooldown <= 0 && g.empCharges != 0
}

// EMPCharges returns the remaining charges, or UnlimitedCharges.
func (g *Game) EMPCharges() int { return g.empCharges }

// TryEMP fires the burst if the cooldown has elapsed and a charge remains.
// Every latched clump is shaken off and every free clump in range is pushed
// outward, all within this call. It reports whether the burst fired; a
// refused attempt changes nothing.
func (g *Game) TryEMP() bool {
	if g.phase != PhasePlaying || !g.EMPReady() {
		return false
	}
	if g.empCharges > 0 {
		g.empCharges--
	}
	cfg := g.tuning.EMP
	s := &g.ship
	s.EMPCooldown = g.round.EMPCooldown
	s.EMPPulse = cfg.PulseDuration

	detached, repelled := 0, 0
	rSq := cfg.Radius * cfg.Radius
	for i := range g.store.Clumps {
		c := &g.store.Clumps[i]
		if c.Dead {
			continue
		}
		if c.Latched {
			out := core.FromAngle(c.LatchAngle)
			c.Latched = false
			c.NoLatchT = cfg.DetachGrace
			c.Vel = out.Scale(cfg.DetachSpeed).Add(s.Vel)
			detached++
			g.emit(Event{Kind: EventDetached, Pos: c.Pos, ClumpID: c.ID, ClumpType: c.Type, Tier: c.Tier})
			continue
		}
		d := g.delta(s.Pos, c.Pos)
		if d.LenSq() > rSq {
			continue
		}
		out := d.Normalize()
		if out == (core.Vec2{}) {
			out = core.FromAngle(s.Heading)
		}
		c.Vel = c.Vel.Add(out.Scale(cfg.RepelImpulse))
		c.NoLatchT = max(c.NoLatchT, cfg.RepelGrace)
		repelled++
	}
	g.relieve(cfg.Relief)
	g.spawnRing(s.Pos)
	g.emit(Event{Kind: EventEMP, Pos: s.Pos, Detached: detached, Repelled: repelled})
	return true
}
