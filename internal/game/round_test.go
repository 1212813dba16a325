package game

import (
	"testing"

	"github.com/vovakirdan/swarm-beacon/internal/config"
)

func TestRoundConfigFor(t *testing.T) {
	rt := config.DefaultTuning().Rounds
	tests := []struct {
		round    int
		want     int
		cooldown float64
		rate     float64
		charges  int
		final    bool
	}{
		{1, 1, 6, 1, UnlimitedCharges, false},
		{2, 2, 8, 1, UnlimitedCharges, false},
		{19, 19, 42, 1, UnlimitedCharges, false},
		{20, 20, 44, 0.25, 1, true},
		{0, 1, 6, 1, UnlimitedCharges, false},
		{99, 20, 44, 0.25, 1, true},
	}
	for _, tt := range tests {
		rc := RoundConfigFor(rt, tt.round)
		if rc.Round != tt.want || rc.EMPCooldown != tt.cooldown || rc.BeaconRate != tt.rate ||
			rc.EMPCharges != tt.charges || rc.Final != tt.final {
			t.Errorf("round %d: got %+v", tt.round, rc)
		}
	}
}

func TestRoundAdvanceCapsAtTotal(t *testing.T) {
	g := newPlayingGame(t)
	g.startRound(99)
	if g.round.Round != g.tuning.Rounds.Total {
		t.Errorf("round should cap at %d, got %d", g.tuning.Rounds.Total, g.round.Round)
	}
}

func TestFinalRoundQuartersBeaconOnly(t *testing.T) {
	g := newPlayingGame(t)
	g.startRound(g.tuning.Rounds.Total)
	c := Clump{Type: Drifter, Tier: TierLarge}
	if got := g.killCharge(c); !near(got, 11*0.25) {
		t.Errorf("final round charge should be quartered, got %v", got)
	}
	if got := g.killScore(c); got != 120 {
		t.Errorf("final round score should be unchanged, got %d", got)
	}
}
