package game

import "github.com/vovakirdan/swarm-beacon/internal/core"

// resolveBulletHits tests every live bullet against the free clumps that
// existed when the pass began. Children appended by a split are not
// candidates until the next tick, and a bullet dies on its first hit.
func (g *Game) resolveBulletHits() {
	n := len(g.store.Clumps)
	for bi := range g.store.Bullets {
		b := &g.store.Bullets[bi]
		if b.Dead {
			continue
		}
		for ci := 0; ci < n; ci++ {
			c := &g.store.Clumps[ci]
			if c.Dead || c.Latched {
				continue
			}
			rr := b.Radius + c.Radius
			if g.delta(b.Pos, c.Pos).LenSq() > rr*rr {
				continue
			}
			b.Dead = true
			g.destroyClump(ci)
			break
		}
	}
}

// resolveLatches attaches overlapping free clumps to the ship and kicks the
// ship away from each one.
func (g *Game) resolveLatches() {
	s := &g.ship
	for i := range g.store.Clumps {
		c := &g.store.Clumps[i]
		if c.Dead || c.Latched || c.NoLatchT > 0 {
			continue
		}
		d := g.delta(s.Pos, c.Pos)
		rr := s.Radius + c.Radius
		if d.LenSq() > rr*rr {
			continue
		}
		g.latch(c, d)
	}
}

// latch slaves c to the ship. d is the wrap-aware vector from ship to clump.
func (g *Game) latch(c *Clump, d core.Vec2) {
	s := &g.ship
	c.Latched = true
	c.LatchAngle = d.Angle()
	c.LatchDist = s.Radius + c.Radius*g.tuning.Clump.LatchDistance
	c.Vel = core.Vec2{}
	c.Pos = g.latchPosition(c)
	s.Vel = s.Vel.Sub(d.Normalize().Scale(g.tuning.Clump.LatchImpulse))
	g.emit(Event{Kind: EventLatched, Pos: c.Pos, ClumpID: c.ID, ClumpType: c.Type, Tier: c.Tier})
}
