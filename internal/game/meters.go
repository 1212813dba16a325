package game

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// Meters returns a copy of the current meters.
func (g *Game) Meters() Meters { return g.meters }

// assimilationRate is the per-second accrual from one latched clump.
func (g *Game) assimilationRate(c *Clump) float64 {
	m := g.tuning.Meters
	var base float64
	switch c.Type {
	case Drifter:
		base = m.DrifterRate
	case Seeker:
		base = m.SeekerRate
	case Latcher:
		base = m.LatcherRate
	}
	return base * m.TierMultipliers[c.Tier]
}

// updateMeters integrates assimilation. With anything latched the meter
// rises by the summed latch rates; otherwise it recovers, less crowding
// pressure when too many free clumps are on the field.
func (g *Game) updateMeters(dt float64) {
	m := g.tuning.Meters
	rate := 0.0
	latched, free := 0, 0
	for i := range g.store.Clumps {
		c := &g.store.Clumps[i]
		switch {
		case c.Dead:
		case c.Latched:
			latched++
			rate += g.assimilationRate(c)
		default:
			free++
		}
	}
	if latched == 0 {
		rate = -m.Recovery
		if free > m.CrowdingThreshold {
			rate += m.CrowdingPressure
		}
	}
	g.setAssimilation(g.meters.Assimilation + rate*dt)
}

func (g *Game) setAssimilation(v float64) {
	g.meters.Assimilation = core.ClampF(v, 0, 100)
	g.meters.MaxAssimilation = math.Max(g.meters.MaxAssimilation, g.meters.Assimilation)
}

func (g *Game) relieve(amount float64) {
	g.setAssimilation(g.meters.Assimilation - amount)
}

func (g *Game) addBeacon(amount float64) {
	g.meters.Beacon = core.ClampF(g.meters.Beacon+amount, 0, 100)
}
