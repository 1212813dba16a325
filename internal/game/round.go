package game

import "github.com/vovakirdan/swarm-beacon/internal/config"

// UnlimitedCharges marks a round whose EMP is gated only by cooldown.
const UnlimitedCharges = -1

// RoundConfig holds the values derived from the round number.
type RoundConfig struct {
	Round       int
	Final       bool
	EMPCooldown float64 // ceiling the cooldown resets to on use
	BeaconRate  float64 // multiplier on every beacon gain
	EMPCharges  int     // UnlimitedCharges outside the final round
}

// RoundConfigFor derives the configuration of round r, clamped to
// [1, t.Total].
func RoundConfigFor(t config.RoundTuning, r int) RoundConfig {
	r = max(1, min(r, t.Total))
	rc := RoundConfig{
		Round:       r,
		Final:       r == t.Total,
		EMPCooldown: t.CooldownBase + t.CooldownStep*float64(r-1),
		BeaconRate:  1,
		EMPCharges:  UnlimitedCharges,
	}
	if rc.Final {
		rc.BeaconRate = t.FinalBeaconRate
		rc.EMPCharges = t.FinalCharges
	}
	return rc
}
