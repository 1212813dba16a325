package game

import (
	"testing"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

func TestEMPDetachesAndRepels(t *testing.T) {
	g := newPlayingGame(t)
	latched := addClump(g, Latcher, TierLarge, g.ship.Pos.Add(core.V(30, 0)))
	g.resolveLatches()
	g.ship.Vel = core.V(0, 10)
	inside := addClump(g, Drifter, TierLarge, g.ship.Pos.Add(core.V(0, -150)))
	outside := addClump(g, Drifter, TierLarge, g.ship.Pos.Add(core.V(0, -300)))
	g.meters.Assimilation = 20

	if !g.TryEMP() {
		t.Fatal("EMP should fire when ready")
	}
	cfg := g.tuning.EMP

	c := g.store.Clumps[latched]
	if c.Latched {
		t.Error("latched clump should be detached")
	}
	if c.NoLatchT != cfg.DetachGrace {
		t.Errorf("detached grace %v, expected %v", c.NoLatchT, cfg.DetachGrace)
	}
	if !near(c.Vel.X, cfg.DetachSpeed) || !near(c.Vel.Y, 10) {
		t.Errorf("detached clump should fly outward plus ship velocity, got %+v", c.Vel)
	}

	c = g.store.Clumps[inside]
	if !near(c.Vel.Y, -cfg.RepelImpulse) || c.NoLatchT != cfg.RepelGrace {
		t.Errorf("clump in radius should be repelled, got vel %+v grace %v", c.Vel, c.NoLatchT)
	}
	c = g.store.Clumps[outside]
	if c.Vel != (core.Vec2{}) || c.NoLatchT != 0 {
		t.Error("clump outside radius should be untouched")
	}

	if !near(g.meters.Assimilation, 12) {
		t.Errorf("expected relief to 12, got %v", g.meters.Assimilation)
	}
	if g.ship.EMPCooldown != g.round.EMPCooldown {
		t.Errorf("cooldown should reset to %v, got %v", g.round.EMPCooldown, g.ship.EMPCooldown)
	}

	var ev *Event
	for i := range g.events {
		if g.events[i].Kind == EventEMP {
			ev = &g.events[i]
		}
	}
	if ev == nil || ev.Detached != 1 || ev.Repelled != 1 {
		t.Errorf("unexpected EMP event %+v", ev)
	}
}

func TestEMPCooldownBlocks(t *testing.T) {
	g := newPlayingGame(t)
	if !g.TryEMP() {
		t.Fatal("first EMP should fire")
	}
	if g.TryEMP() {
		t.Error("EMP should be blocked by cooldown")
	}
	for range 7 * 60 {
		g.Step(core.NewInputFrame(), 1.0/60)
	}
	if g.Phase() == PhasePlaying && !g.EMPReady() {
		t.Errorf("EMP should be ready after the round 1 cooldown, remaining %v", g.ship.EMPCooldown)
	}
}

func TestEMPUnlimitedOutsideFinalRound(t *testing.T) {
	g := newPlayingGame(t)
	for i := range 5 {
		g.ship.EMPCooldown = 0
		if !g.TryEMP() {
			t.Fatalf("EMP %d should fire on round 1", i)
		}
	}
	if g.EMPCharges() != UnlimitedCharges {
		t.Errorf("charges should stay unlimited, got %d", g.EMPCharges())
	}
}

func TestFinalRoundEMPSingleCharge(t *testing.T) {
	g := newPlayingGame(t)
	g.startRound(g.tuning.Rounds.Total)
	g.spawnTimer = 1e9
	if g.EMPCharges() != 1 {
		t.Fatalf("final round should start with 1 charge, got %d", g.EMPCharges())
	}
	g.meters.Assimilation = 50

	if !g.TryEMP() {
		t.Fatal("EMP should fire with one charge")
	}
	if g.EMPCharges() != 0 {
		t.Errorf("charge should drop to 0, got %d", g.EMPCharges())
	}
	snap := g.Snapshot()
	before := snap.Hash()
	assim := g.meters.Assimilation

	if g.TryEMP() {
		t.Error("second EMP before cooldown should be refused")
	}
	snap = g.Snapshot()
	if snap.Hash() != before || g.meters.Assimilation != assim {
		t.Error("refused EMP changed state")
	}

	g.ship.EMPCooldown = 0
	if g.TryEMP() {
		t.Error("EMP with no charges should be refused even off cooldown")
	}
}

func TestEMPRequiresPlaying(t *testing.T) {
	g := newPlayingGame(t)
	g.Step(press(core.ActionPause), 0)
	if g.TryEMP() {
		t.Error("EMP should not fire while paused")
	}
}

func TestEMPVelocitiesSurviveIntegration(t *testing.T) {
	g := newPlayingGame(t)
	latched := addClump(g, Drifter, TierMid, g.ship.Pos.Add(core.V(30, 0)))
	g.resolveLatches()
	if !g.store.Clumps[latched].Latched {
		t.Fatal("setup: clump should be latched")
	}
	repelled := addClump(g, Drifter, TierSmall, g.ship.Pos.Add(core.V(0, -120)))
	g.store.Clumps[repelled].Vel = core.V(0, -100)
	g.ship.Vel = core.V(300, 0)

	if !g.TryEMP() {
		t.Fatal("EMP should fire when ready")
	}
	g.updateClumps(1.0 / 60)

	cfg := g.tuning.EMP
	c := g.store.Clumps[latched]
	rel := c.Vel.Sub(g.ship.Vel)
	if rel.X < 0.95*cfg.DetachSpeed {
		t.Errorf("detached clump should keep moving away from the ship, relative velocity %+v", rel)
	}
	if got := g.store.Clumps[repelled].Vel.Len(); got < 0.95*(100+cfg.RepelImpulse) {
		t.Errorf("repelled clump speed %.1f, expected about %.1f", got, 100+cfg.RepelImpulse)
	}
}
