// Package game implements the swarm/beacon simulation: a ship on a toroidal
// plane clearing clumps that try to latch on and assimilate it, while each kill
// charges a rescue beacon. The simulation is pure and seeded; the same init
// and the same sequence of (intents, dt) pairs always produce the same state.
package game

import "github.com/vovakirdan/swarm-beacon/internal/core"

// ClumpType selects a clump's homing strength and assimilation rate.
type ClumpType int

const (
	Drifter ClumpType = iota
	Seeker
	Latcher
)

func (t ClumpType) String() string {
	switch t {
	case Drifter:
		return "drifter"
	case Seeker:
		return "seeker"
	case Latcher:
		return "latcher"
	default:
		return "unknown"
	}
}

// Tier is a clump's size class. Tier 2 is the largest; tier 0 never splits.
type Tier int

const (
	TierSmall Tier = iota
	TierMid
	TierLarge
)

// Ship is the player craft. Heading 0 points along +X.
type Ship struct {
	Pos       core.Vec2
	Vel       core.Vec2
	Heading   float64
	Radius    float64
	Thrusting bool

	FireCooldown float64
	EMPCooldown  float64
	EMPPulse     float64 // seconds of EMP ring left to draw
}

// Bullet is a short-lived projectile.
type Bullet struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Life   float64
	Radius float64
	Dead   bool
}

// Clump is a swarm entity. A latched clump carries no velocity of its own;
// its position is derived from the ship each tick.
type Clump struct {
	ID     uint64
	Type   ClumpType
	Tier   Tier
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64

	Spin       float64 // rad/s, only used while latched
	Latched    bool
	LatchAngle float64
	LatchDist  float64
	NoLatchT   float64 // seconds before this clump may latch again

	Dead bool
}

// ParticleKind selects how a particle is drawn.
type ParticleKind int

const (
	ParticleSpark ParticleKind = iota
	ParticleExhaust
	ParticleMuzzle
	ParticleDebris
	ParticleRing
)

// Particle is cosmetic only. Particles never influence gameplay state.
type Particle struct {
	Kind    ParticleKind
	Pos     core.Vec2
	Vel     core.Vec2
	Life    float64
	MaxLife float64
	Dead    bool
}
