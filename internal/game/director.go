package game

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// Difficulty returns the current round's difficulty in [0, 1].
func (g *Game) Difficulty() float64 {
	return g.difficulty.Level(g.roundTime)
}

// runDirector counts down to the next spawn and adds a clump when the free
// population is under the cap. The timer restarts whether or not a clump
// was added.
func (g *Game) runDirector(dt float64) {
	g.spawnTimer -= dt
	if g.spawnTimer > 0 {
		return
	}
	g.spawnTimer = g.difficulty.SpawnInterval(g.roundTime)
	if g.store.FreeClumps() >= g.difficulty.PopulationCap(g.roundTime) {
		return
	}
	g.spawnClump()
}

// pickType rolls the clump type for difficulty d. A latcher roll overrides a
// seeker roll.
func (g *Game) pickType(d float64) ClumpType {
	cfg := g.tuning.Director
	t := Drifter
	roll := g.rng.Next()
	if d >= cfg.SeekerGate && roll < cfg.SeekerBase+cfg.SeekerScale*d {
		t = Seeker
	}
	if d >= cfg.LatcherGate && g.rng.Next() > cfg.LatcherThreshold {
		t = Latcher
	}
	return t
}

func (g *Game) pickTier() Tier {
	if g.rng.Chance(g.tuning.Director.MidTierChance) {
		return TierMid
	}
	return TierLarge
}

// spawnPoint picks a point on one of the four borders, inset by radius, that
// is at least MinShipDistance from the ship. If every attempt lands too close
// the point diametrically opposite the ship is used.
func (g *Game) spawnPoint(radius float64) core.Vec2 {
	cfg := g.tuning.Director
	minSq := cfg.MinShipDistance * cfg.MinShipDistance
	w, h := g.worldW, g.worldH
	for range max(1, cfg.PlacementAttempts) {
		var p core.Vec2
		switch g.rng.Int(0, 3) {
		case 0:
			p = core.V(g.rng.Range(radius, w-radius), radius)
		case 1:
			p = core.V(w-radius, g.rng.Range(radius, h-radius))
		case 2:
			p = core.V(g.rng.Range(radius, w-radius), h-radius)
		default:
			p = core.V(radius, g.rng.Range(radius, h-radius))
		}
		if g.delta(p, g.ship.Pos).LenSq() >= minSq {
			return p
		}
	}
	return g.wrap(g.ship.Pos.Add(core.V(w/2, h/2)))
}

func (g *Game) speedMultiplier(t ClumpType) float64 {
	switch t {
	case Seeker:
		return g.tuning.Clump.SeekerSpeed
	case Latcher:
		return g.tuning.Clump.LatcherSpeed
	default:
		return 1
	}
}

func (g *Game) spawnClump() {
	cfg := g.tuning.Clump
	t := g.pickType(g.Difficulty())
	tier := g.pickTier()
	radius := cfg.Radii[tier]
	pos := g.spawnPoint(radius)
	speed := g.rng.Range(cfg.MinSpeed, cfg.MaxSpeed) * g.speedMultiplier(t)
	heading := g.rng.Range(0, 2*math.Pi)
	c := g.newClump(t, tier, pos, core.FromAngle(heading).Scale(speed))
	g.store.Clumps = append(g.store.Clumps, c)
	g.emit(Event{Kind: EventClumpSpawned, Pos: pos, ClumpID: c.ID, ClumpType: t, Tier: tier})
}

// newClump allocates the next id and rolls a spin rate.
func (g *Game) newClump(t ClumpType, tier Tier, pos, vel core.Vec2) Clump {
	cfg := g.tuning.Clump
	id := g.nextID
	g.nextID++
	return Clump{
		ID:     id,
		Type:   t,
		Tier:   tier,
		Pos:    pos,
		Vel:    vel,
		Radius: cfg.Radii[tier],
		Spin:   g.rng.Range(cfg.MinSpin, cfg.MaxSpin) * g.rng.Sign(),
	}
}
