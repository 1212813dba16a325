package game

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// destroyClump resolves a bullet hit on the clump at index i: score, beacon
// and relief are applied, then tiers above the smallest split into two
// children. The parent is only marked dead; compaction removes it later.
func (g *Game) destroyClump(i int) {
	parent := g.store.Clumps[i]
	g.store.Clumps[i].Dead = true

	g.meters.Score += g.killScore(parent)
	g.addBeacon(g.killCharge(parent))
	g.relieve(g.tuning.Meters.KillRelief)

	children := 0
	if parent.Tier > TierSmall {
		children = g.split(parent)
	}
	g.spawnHitBurst(parent.Pos, parent.Tier)
	g.emit(Event{
		Kind:      EventClumpDestroyed,
		Pos:       parent.Pos,
		ClumpID:   parent.ID,
		ClumpType: parent.Type,
		Tier:      parent.Tier,
		Children:  children,
	})
}

// killScore is the floored, type-weighted score for destroying c.
func (g *Game) killScore(c Clump) int {
	m := g.tuning.Meters
	// The epsilon keeps products like 60*1.15 from flooring one short.
	return int(math.Floor(m.ScoreBase[c.Tier]*m.ScoreBonus[c.Type] + 1e-9))
}

// killCharge is the beacon gain for destroying c on the current round.
func (g *Game) killCharge(c Clump) float64 {
	m := g.tuning.Meters
	return m.BeaconBase[c.Tier] * m.BeaconBonus[c.Type] * g.round.BeaconRate
}

// split appends two children one tier down at the parent's position.
func (g *Game) split(parent Clump) int {
	cfg := g.tuning.Clump
	tier := parent.Tier - 1
	for range 2 {
		kick := core.FromAngle(g.rng.Range(0, 2*math.Pi)).Scale(g.rng.Range(cfg.SplitMinKick, cfg.SplitMaxKick))
		child := g.newClump(parent.Type, tier, parent.Pos, parent.Vel.Add(kick))
		child.NoLatchT = cfg.SplitGrace
		g.store.Clumps = append(g.store.Clumps, child)
	}
	return 2
}
