package game

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// ParticleView is a particle as the renderer sees it.
type ParticleView struct {
	Kind     ParticleKind
	Pos      core.Vec2
	LifeFrac float64 // remaining life in (0, 1]
}

// Snapshot is a read-only copy of everything a renderer, autopilot or
// telemetry sink may look at. Slices are copies; mutating them has no effect
// on the game.
type Snapshot struct {
	Tick        uint64
	Phase       Phase
	Outcome     Outcome
	Round       int
	TotalRounds int
	RoundTime   float64
	Difficulty  float64

	WorldW float64
	WorldH float64

	Ship      Ship
	Clumps    []Clump
	Bullets   []Bullet
	Particles []ParticleView

	Meters         Meters
	EMPCooldown    float64
	EMPCooldownMax float64
	EMPCharges     int

	Username   string
	AllowAbort bool
	Seed       uint32
	RNGState   uint32
	Muted      bool
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	particles := make([]ParticleView, 0, len(g.store.Particles))
	for _, p := range g.store.Particles {
		if p.Dead {
			continue
		}
		frac := 0.0
		if p.MaxLife > 0 {
			frac = core.ClampF(p.Life/p.MaxLife, 0, 1)
		}
		particles = append(particles, ParticleView{Kind: p.Kind, Pos: p.Pos, LifeFrac: frac})
	}
	return Snapshot{
		Tick:           g.tick,
		Phase:          g.phase,
		Outcome:        g.outcome,
		Round:          g.round.Round,
		TotalRounds:    g.tuning.Rounds.Total,
		RoundTime:      g.roundTime,
		Difficulty:     g.Difficulty(),
		WorldW:         g.worldW,
		WorldH:         g.worldH,
		Ship:           g.ship,
		Clumps:         append([]Clump(nil), g.store.Clumps...),
		Bullets:        append([]Bullet(nil), g.store.Bullets...),
		Particles:      particles,
		Meters:         g.meters,
		EMPCooldown:    g.ship.EMPCooldown,
		EMPCooldownMax: g.round.EMPCooldown,
		EMPCharges:     g.empCharges,
		Username:       g.host.Username,
		AllowAbort:     g.host.AllowAbort,
		Seed:           g.host.Seed,
		RNGState:       g.rng.State(),
		Muted:          g.muted,
	}
}

// Hash digests the gameplay-relevant state for determinism checks.
// Particles are cosmetic and excluded.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	u := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	f := func(v float64) { u(math.Float64bits(v)) }
	vec := func(v core.Vec2) { f(v.X); f(v.Y) }
	b := func(v bool) {
		if v {
			u(1)
		} else {
			u(0)
		}
	}

	u(snap.Tick)
	u(uint64(snap.Phase))   //#nosec G115 -- small enum
	u(uint64(snap.Outcome)) //#nosec G115 -- small enum
	u(uint64(snap.Round))   //#nosec G115 -- round is always positive
	f(snap.RoundTime)
	u(uint64(snap.RNGState))

	vec(snap.Ship.Pos)
	vec(snap.Ship.Vel)
	f(snap.Ship.Heading)
	f(snap.Ship.FireCooldown)
	f(snap.Ship.EMPCooldown)

	u(uint64(len(snap.Clumps)))
	for _, c := range snap.Clumps {
		u(c.ID)
		u(uint64(c.Type)) //#nosec G115 -- small enum
		u(uint64(c.Tier)) //#nosec G115 -- small enum
		vec(c.Pos)
		vec(c.Vel)
		b(c.Latched)
		f(c.LatchAngle)
		f(c.NoLatchT)
	}
	u(uint64(len(snap.Bullets)))
	for _, bl := range snap.Bullets {
		vec(bl.Pos)
		f(bl.Life)
	}

	f(snap.Meters.Assimilation)
	f(snap.Meters.MaxAssimilation)
	f(snap.Meters.Beacon)
	u(uint64(snap.Meters.Score)) //#nosec G115 -- score is never negative
	u(uint64(int64(snap.EMPCharges)))
	return h.Sum64()
}
