package game

import "github.com/vovakirdan/swarm-beacon/internal/core"

// homingRate is the acceleration toward the ship, in u/s².
func (g *Game) homingRate(t ClumpType) float64 {
	h := g.tuning.Homing
	switch t {
	case Drifter:
		return h.Drifter
	case Seeker:
		return h.Seeker
	case Latcher:
		return h.Latcher
	default:
		return 0
	}
}

// home returns the clump velocity nudged toward the ship when the ship is
// inside the detection radius, measured along the shorter toroidal path.
func (g *Game) home(c *Clump, dt float64) core.Vec2 {
	r := g.tuning.Homing.Radius
	d := g.delta(c.Pos, g.ship.Pos)
	if d.LenSq() >= r*r {
		return c.Vel
	}
	return c.Vel.Add(d.Normalize().Scale(g.homingRate(c.Type) * dt))
}
