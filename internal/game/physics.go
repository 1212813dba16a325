package game

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// updateShip integrates rotation, thrust, braking, drag and the speed cap,
// then wraps the position and fires if the trigger is held.
func (g *Game) updateShip(in core.InputFrame, dt float64) {
	cfg := g.tuning.Ship
	s := &g.ship

	if in.Has(core.ActionRotateLeft) {
		s.Heading -= cfg.TurnRate * dt
	}
	if in.Has(core.ActionRotateRight) {
		s.Heading += cfg.TurnRate * dt
	}
	s.Heading = math.Remainder(s.Heading, 2*math.Pi)

	forward := core.FromAngle(s.Heading)
	s.Thrusting = in.Has(core.ActionThrust)
	if s.Thrusting {
		s.Vel = s.Vel.Add(forward.Scale(cfg.Thrust * dt))
	}
	if in.Has(core.ActionBrake) {
		s.Vel = core.Damp(s.Vel, cfg.BrakeDamping, dt)
	}
	s.Vel = core.Damp(s.Vel, cfg.Drag, dt).ClampLen(cfg.MaxSpeed)
	s.Pos = g.wrap(s.Pos.Add(s.Vel.Scale(dt)))

	s.FireCooldown = math.Max(0, s.FireCooldown-dt)
	s.EMPCooldown = math.Max(0, s.EMPCooldown-dt)
	s.EMPPulse = math.Max(0, s.EMPPulse-dt)

	if s.Thrusting && g.fx.Chance(g.tuning.Particles.ThrustRate) {
		g.spawnExhaust()
	}
	if in.Has(core.ActionFire) && s.FireCooldown <= 0 {
		g.fire()
	}
}

func (g *Game) fire() {
	s := &g.ship
	forward := core.FromAngle(s.Heading)
	muzzle := g.wrap(s.Pos.Add(forward.Scale(s.Radius)))
	g.store.Bullets = append(g.store.Bullets, Bullet{
		Pos:    muzzle,
		Vel:    s.Vel.Add(forward.Scale(g.tuning.Bullet.Speed)),
		Life:   g.tuning.Bullet.Lifetime,
		Radius: g.tuning.Bullet.Radius,
	})
	s.FireCooldown = g.tuning.Ship.FireCooldown
	g.spawnMuzzle(muzzle, s.Heading)
	g.emit(Event{Kind: EventShotFired, Pos: muzzle})
}

func (g *Game) updateBullets(dt float64) {
	for i := range g.store.Bullets {
		b := &g.store.Bullets[i]
		if b.Dead {
			continue
		}
		b.Pos = g.wrap(b.Pos.Add(b.Vel.Scale(dt)))
		b.Life -= dt
		if b.Life <= 0 {
			b.Dead = true
		}
	}
}

// updateClumps moves free clumps under homing and damping, and re-derives
// latched clumps from the ship pose.
func (g *Game) updateClumps(dt float64) {
	cfg := g.tuning.Clump
	for i := range g.store.Clumps {
		c := &g.store.Clumps[i]
		if c.Dead {
			continue
		}
		if c.Latched {
			c.LatchAngle = math.Remainder(c.LatchAngle+c.Spin*dt, 2*math.Pi)
			c.Pos = g.latchPosition(c)
			continue
		}
		c.NoLatchT = math.Max(0, c.NoLatchT-dt)
		c.Vel = g.home(c, dt)
		c.Vel = core.Damp(c.Vel, cfg.Damping, dt)
		c.Pos = g.wrap(c.Pos.Add(c.Vel.Scale(dt)))
	}
}

func (g *Game) latchPosition(c *Clump) core.Vec2 {
	return g.wrap(g.ship.Pos.Add(core.FromAngle(c.LatchAngle).Scale(c.LatchDist)))
}
