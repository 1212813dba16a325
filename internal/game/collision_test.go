package game

import (
	"testing"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

func addClump(g *Game, t ClumpType, tier Tier, pos core.Vec2) int {
	g.store.Clumps = append(g.store.Clumps, g.newClump(t, tier, pos, core.Vec2{}))
	return len(g.store.Clumps) - 1
}

func addBullet(g *Game, pos core.Vec2) {
	g.store.Bullets = append(g.store.Bullets, Bullet{Pos: pos, Life: 1, Radius: g.tuning.Bullet.Radius})
}

func TestTierTwoDrifterHit(t *testing.T) {
	g := newPlayingGame(t)
	target := core.V(200, 200)
	addClump(g, Drifter, TierLarge, target)
	addBullet(g, target)
	g.meters.Assimilation = 5

	g.resolveBulletHits()
	g.store.Compact()

	m := g.Meters()
	if m.Score != 120 {
		t.Errorf("expected score 120, got %d", m.Score)
	}
	if !near(m.Beacon, 11*g.round.BeaconRate) {
		t.Errorf("expected beacon %v, got %v", 11*g.round.BeaconRate, m.Beacon)
	}
	if !near(m.Assimilation, 3.5) {
		t.Errorf("expected kill relief to 3.5, got %v", m.Assimilation)
	}
	if len(g.store.Bullets) != 0 {
		t.Error("bullet should be consumed")
	}
	if len(g.store.Clumps) != 2 {
		t.Fatalf("expected 2 children, got %d", len(g.store.Clumps))
	}
	for _, c := range g.store.Clumps {
		if c.Type != Drifter || c.Tier != TierMid {
			t.Errorf("child should be a tier-1 drifter, got %v tier %d", c.Type, c.Tier)
		}
		if c.Radius != g.tuning.Clump.Radii[TierMid] {
			t.Errorf("child radius %v does not match tier table", c.Radius)
		}
		if c.Pos != target {
			t.Errorf("child should spawn at parent position, got %+v", c.Pos)
		}
		if c.NoLatchT <= 0 {
			t.Error("child should carry a latch grace period")
		}
	}
}

func TestSplitConservation(t *testing.T) {
	tests := []struct {
		tier     Tier
		children int
	}{
		{TierLarge, 2},
		{TierMid, 2},
		{TierSmall, 0},
	}
	for _, tt := range tests {
		g := newPlayingGame(t)
		addClump(g, Seeker, tt.tier, core.V(300, 300))
		addBullet(g, core.V(300, 300))
		g.resolveBulletHits()

		var destroyed *Event
		for i := range g.events {
			if g.events[i].Kind == EventClumpDestroyed {
				destroyed = &g.events[i]
			}
		}
		if destroyed == nil || destroyed.Children != tt.children {
			t.Errorf("tier %d: expected %d children in event, got %+v", tt.tier, tt.children, destroyed)
		}
		g.store.Compact()
		if len(g.store.Clumps) != tt.children {
			t.Errorf("tier %d: expected %d clumps after split, got %d", tt.tier, tt.children, len(g.store.Clumps))
		}
		for _, c := range g.store.Clumps {
			if c.Tier != tt.tier-1 || c.Radius != g.tuning.Clump.Radii[c.Tier] {
				t.Errorf("tier %d: bad child tier %d radius %v", tt.tier, c.Tier, c.Radius)
			}
		}
	}
}

func TestKillScoreTable(t *testing.T) {
	g := newPlayingGame(t)
	tests := []struct {
		typ  ClumpType
		tier Tier
		want int
	}{
		{Drifter, TierLarge, 120},
		{Drifter, TierSmall, 30},
		{Seeker, TierLarge, 138},
		{Seeker, TierMid, 69},
		{Seeker, TierSmall, 34},
		{Latcher, TierLarge, 162},
		{Latcher, TierMid, 81},
		{Latcher, TierSmall, 40},
	}
	for _, tt := range tests {
		got := g.killScore(Clump{Type: tt.typ, Tier: tt.tier})
		if got != tt.want {
			t.Errorf("%v tier %d: expected %d, got %d", tt.typ, tt.tier, tt.want, got)
		}
	}
}

func TestBeaconClampsAtFull(t *testing.T) {
	g := newPlayingGame(t)
	g.meters.Beacon = 95
	addClump(g, Latcher, TierLarge, core.V(100, 100))
	addBullet(g, core.V(100, 100))
	g.resolveBulletHits()
	if g.meters.Beacon != 100 {
		t.Errorf("beacon should clamp at 100, got %v", g.meters.Beacon)
	}
}

func TestBulletHitsAtMostOneClump(t *testing.T) {
	g := newPlayingGame(t)
	addClump(g, Drifter, TierSmall, core.V(400, 400))
	addClump(g, Drifter, TierSmall, core.V(402, 400))
	addBullet(g, core.V(401, 400))

	g.resolveBulletHits()
	g.store.Compact()
	if len(g.store.Clumps) != 1 {
		t.Errorf("expected one survivor, got %d", len(g.store.Clumps))
	}
}

func TestChildrenAreNotHitOnTheirSpawnTick(t *testing.T) {
	g := newPlayingGame(t)
	addClump(g, Drifter, TierLarge, core.V(500, 500))
	addBullet(g, core.V(500, 500))
	addBullet(g, core.V(500, 500))

	g.resolveBulletHits()
	g.store.Compact()
	if len(g.store.Clumps) != 2 {
		t.Errorf("children should survive the pass that created them, got %d clumps", len(g.store.Clumps))
	}
	if len(g.store.Bullets) != 1 {
		t.Errorf("second bullet should survive, got %d bullets", len(g.store.Bullets))
	}
}

func TestLatchedClumpsIgnoreBullets(t *testing.T) {
	g := newPlayingGame(t)
	i := addClump(g, Drifter, TierLarge, g.ship.Pos.Add(core.V(30, 0)))
	g.resolveLatches()
	if !g.store.Clumps[i].Latched {
		t.Fatal("clump should latch")
	}
	addBullet(g, g.store.Clumps[i].Pos)
	g.resolveBulletHits()
	if g.store.Clumps[i].Dead {
		t.Error("latched clump should not be hit")
	}
}

func TestHitAcrossWorldEdge(t *testing.T) {
	g := newPlayingGame(t)
	addClump(g, Drifter, TierSmall, core.V(2, 300))
	addBullet(g, core.V(g.worldW-2, 300))
	g.resolveBulletHits()
	if !g.store.Clumps[0].Dead {
		t.Error("collision should be measured across the wrap")
	}
}

func TestLatchAttachesAndKicksShip(t *testing.T) {
	g := newPlayingGame(t)
	i := addClump(g, Latcher, TierLarge, g.ship.Pos.Add(core.V(30, 0)))
	g.resolveLatches()

	c := g.store.Clumps[i]
	if !c.Latched {
		t.Fatal("overlapping clump should latch")
	}
	if !near(c.LatchAngle, 0) {
		t.Errorf("latch angle should be bearing from ship, got %v", c.LatchAngle)
	}
	wantDist := g.tuning.Ship.Radius + c.Radius*g.tuning.Clump.LatchDistance
	if !near(c.LatchDist, wantDist) {
		t.Errorf("expected latch distance %v, got %v", wantDist, c.LatchDist)
	}
	if c.Vel != (core.Vec2{}) {
		t.Error("latched clump should carry no velocity")
	}
	if !near(g.ship.Vel.X, -g.tuning.Clump.LatchImpulse) || !near(g.ship.Vel.Y, 0) {
		t.Errorf("ship should be pushed away, got %+v", g.ship.Vel)
	}
}

func TestLatchGracePreventsLatch(t *testing.T) {
	g := newPlayingGame(t)
	i := addClump(g, Drifter, TierMid, g.ship.Pos)
	g.store.Clumps[i].NoLatchT = 0.2
	g.resolveLatches()
	if g.store.Clumps[i].Latched {
		t.Error("clump in grace period should not latch")
	}
}

func TestLatchedClumpFollowsShip(t *testing.T) {
	g := newPlayingGame(t)
	i := addClump(g, Drifter, TierLarge, g.ship.Pos.Add(core.V(0, 30)))
	g.resolveLatches()
	g.ship.Pos = core.V(100, 100)
	g.store.Clumps[i].Spin = 0
	g.updateClumps(0.1)

	c := g.store.Clumps[i]
	want := g.wrap(g.ship.Pos.Add(core.FromAngle(c.LatchAngle).Scale(c.LatchDist)))
	if !near(c.Pos.X, want.X) || !near(c.Pos.Y, want.Y) {
		t.Errorf("latched clump at %+v, expected %+v", c.Pos, want)
	}
}

func TestHomingPullsTowardShip(t *testing.T) {
	g := newPlayingGame(t)
	inRange := addClump(g, Seeker, TierLarge, g.ship.Pos.Add(core.V(300, 0)))
	outOfRange := addClump(g, Seeker, TierLarge, g.ship.Pos.Add(core.V(0, 350)).Add(core.V(300, 0)))
	g.store.Clumps[inRange].NoLatchT = 1
	g.store.Clumps[outOfRange].NoLatchT = 1

	g.updateClumps(0.05)
	if g.store.Clumps[inRange].Vel.X >= 0 {
		t.Errorf("clump in range should accelerate toward ship, vel %+v", g.store.Clumps[inRange].Vel)
	}
	if g.store.Clumps[outOfRange].Vel != (core.Vec2{}) {
		t.Errorf("clump out of range should not home, vel %+v", g.store.Clumps[outOfRange].Vel)
	}
}

func TestHomingRateOrdering(t *testing.T) {
	g := newPlayingGame(t)
	if !(g.homingRate(Drifter) < g.homingRate(Seeker) && g.homingRate(Seeker) < g.homingRate(Latcher)) {
		t.Error("homing should be weakest for drifters and strongest for latchers")
	}
}
