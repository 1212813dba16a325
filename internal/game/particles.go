package game

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// fxSeed derives the cosmetic stream's seed so that both streams are fixed by
// the one host seed.
func fxSeed(seed uint32) uint32 {
	return seed ^ 0xA5A5A5A5
}

func (g *Game) addParticle(p Particle) {
	if len(g.store.Particles) >= g.tuning.Particles.Max {
		return
	}
	p.MaxLife = p.Life
	g.store.Particles = append(g.store.Particles, p)
}

func (g *Game) spawnExhaust() {
	s := &g.ship
	back := core.FromAngle(s.Heading + math.Pi + g.fx.Range(-0.35, 0.35))
	g.addParticle(Particle{
		Kind: ParticleExhaust,
		Pos:  g.wrap(s.Pos.Add(back.Scale(s.Radius))),
		Vel:  s.Vel.Add(back.Scale(g.fx.Range(60, 140))),
		Life: g.fx.Range(0.2, 0.45),
	})
}

func (g *Game) spawnMuzzle(pos core.Vec2, heading float64) {
	for range 2 {
		dir := core.FromAngle(heading + g.fx.Range(-0.5, 0.5))
		g.addParticle(Particle{
			Kind: ParticleMuzzle,
			Pos:  pos,
			Vel:  dir.Scale(g.fx.Range(80, 160)),
			Life: g.fx.Range(0.08, 0.16),
		})
	}
}

// spawnHitBurst scales the number of sparks with the destroyed tier.
func (g *Game) spawnHitBurst(pos core.Vec2, tier Tier) {
	n := g.tuning.Particles.HitBurst * (int(tier) + 1)
	for i := range n {
		kind := ParticleSpark
		if i%3 == 0 {
			kind = ParticleDebris
		}
		dir := core.FromAngle(g.fx.Range(0, 2*math.Pi))
		g.addParticle(Particle{
			Kind: kind,
			Pos:  pos,
			Vel:  dir.Scale(g.fx.Range(40, 220)),
			Life: g.fx.Range(0.3, 0.8),
		})
	}
}

// spawnRing emits evenly spaced particles racing outward from pos.
func (g *Game) spawnRing(pos core.Vec2) {
	n := g.tuning.Particles.EMPRing
	if n <= 0 {
		return
	}
	speed := g.tuning.EMP.Radius / g.tuning.EMP.PulseDuration
	for i := range n {
		dir := core.FromAngle(2 * math.Pi * float64(i) / float64(n))
		g.addParticle(Particle{
			Kind: ParticleRing,
			Pos:  pos,
			Vel:  dir.Scale(speed),
			Life: g.tuning.EMP.PulseDuration,
		})
	}
}

func (g *Game) updateParticles(dt float64) {
	for i := range g.store.Particles {
		p := &g.store.Particles[i]
		if p.Dead {
			continue
		}
		p.Life -= dt
		if p.Life <= 0 {
			p.Dead = true
			continue
		}
		p.Vel = core.Damp(p.Vel, 2.5, dt)
		p.Pos = g.wrap(p.Pos.Add(p.Vel.Scale(dt)))
	}
}
