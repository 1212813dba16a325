package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the built-in tuning. It mirrors defaults/tuning.yaml
// and is used when the embedded file cannot be parsed.
func DefaultTuning() Tuning {
	return Tuning{
		World: WorldTuning{
			Width:  1280,
			Height: 720,
			MaxDT:  0.05,
		},
		Ship: ShipTuning{
			Radius:       16,
			TurnRate:     4.2,
			Thrust:       520,
			BrakeDamping: 4.0,
			Drag:         0.35,
			MaxSpeed:     420,
			FireCooldown: 0.14,
		},
		Bullet: BulletTuning{
			Speed:    720,
			Lifetime: 0.9,
			Radius:   3,
		},
		Clump: ClumpTuning{
			Radii:         [3]float64{16, 26, 38},
			Damping:       0.12,
			MinSpeed:      35,
			MaxSpeed:      75,
			SeekerSpeed:   1.15,
			LatcherSpeed:  1.2,
			MinSpin:       0.6,
			MaxSpin:       1.6,
			SplitMinKick:  40,
			SplitMaxKick:  110,
			SplitGrace:    0.6,
			LatchDistance: 0.65,
			LatchImpulse:  45,
		},
		Director: DirectorTuning{
			RampSeconds:       90,
			StartInterval:     1.75,
			EndInterval:       0.65,
			BaseCap:           12,
			ExtraCap:          10,
			MinShipDistance:   220,
			PlacementAttempts: 8,
			SeekerGate:        0.25,
			SeekerBase:        0.2,
			SeekerScale:       0.5,
			LatcherGate:       0.55,
			LatcherThreshold:  0.82,
			MidTierChance:     0.35,
		},
		Homing: HomingTuning{
			Radius:  420,
			Drifter: 38,
			Seeker:  85,
			Latcher: 130,
		},
		Meters: MeterTuning{
			DrifterRate:       1.8,
			SeekerRate:        2.8,
			LatcherRate:       4.2,
			TierMultipliers:   [3]float64{0.75, 1.0, 1.35},
			Recovery:          2.5,
			CrowdingThreshold: 10,
			CrowdingPressure:  0.9,
			KillRelief:        1.5,
			ScoreBase:         [3]float64{30, 60, 120},
			ScoreBonus:        [3]float64{1, 1.15, 1.35},
			BeaconBase:        [3]float64{3, 6, 11},
			BeaconBonus:       [3]float64{1, 1.1, 1.25},
		},
		EMP: EMPTuning{
			Radius:        180,
			Relief:        8,
			DetachSpeed:   260,
			DetachGrace:   1.2,
			RepelImpulse:  220,
			RepelGrace:    0.5,
			PulseDuration: 0.35,
		},
		Rounds: RoundTuning{
			Total:           20,
			CooldownBase:    6.0,
			CooldownStep:    2.0,
			FinalBeaconRate: 0.25,
			FinalCharges:    1,
		},
		Particles: ParticleTuning{
			Max:        600,
			HitBurst:   6,
			EMPRing:    28,
			ThrustRate: 0.6,
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultTuningYAML
}
