// Package config provides YAML-based tuning for the beacon simulation and the
// difficulty curve the director follows.
package config

import (
	"errors"
	"fmt"
)

// Tuning contains every numeric constant of the simulation.
type Tuning struct {
	World     WorldTuning    `yaml:"world"`
	Ship      ShipTuning     `yaml:"ship"`
	Bullet    BulletTuning   `yaml:"bullet"`
	Clump     ClumpTuning    `yaml:"clump"`
	Director  DirectorTuning `yaml:"director"`
	Homing    HomingTuning   `yaml:"homing"`
	Meters    MeterTuning    `yaml:"meters"`
	EMP       EMPTuning      `yaml:"emp"`
	Rounds    RoundTuning    `yaml:"rounds"`
	Particles ParticleTuning `yaml:"particles"`
}

// WorldTuning defines the toroidal plane and step limits.
type WorldTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	MaxDT  float64 `yaml:"max_dt"` // Upper bound on a single tick, seconds
}

// ShipTuning defines the player craft.
type ShipTuning struct {
	Radius       float64 `yaml:"radius"`
	TurnRate     float64 `yaml:"turn_rate"`     // rad/s while a rotate intent is held
	Thrust       float64 `yaml:"thrust"`        // u/s²
	BrakeDamping float64 `yaml:"brake_damping"` // exponential rate while braking
	Drag         float64 `yaml:"drag"`          // exponential rate, always on
	MaxSpeed     float64 `yaml:"max_speed"`
	FireCooldown float64 `yaml:"fire_cooldown"`
}

// BulletTuning defines projectiles.
type BulletTuning struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
}

// ClumpTuning defines swarm entities.
type ClumpTuning struct {
	Radii         [3]float64 `yaml:"radii"` // indexed by tier 0..2
	Damping       float64    `yaml:"damping"`
	MinSpeed      float64    `yaml:"min_speed"`
	MaxSpeed      float64    `yaml:"max_speed"`
	SeekerSpeed   float64    `yaml:"seeker_speed"`  // multiplier
	LatcherSpeed  float64    `yaml:"latcher_speed"` // multiplier
	MinSpin       float64    `yaml:"min_spin"`
	MaxSpin       float64    `yaml:"max_spin"`
	SplitMinKick  float64    `yaml:"split_min_kick"`
	SplitMaxKick  float64    `yaml:"split_max_kick"`
	SplitGrace    float64    `yaml:"split_grace"`
	LatchDistance float64    `yaml:"latch_distance"` // fraction of clump radius added to ship radius
	LatchImpulse  float64    `yaml:"latch_impulse"`
}

// DirectorTuning defines the spawn scheduler.
type DirectorTuning struct {
	RampSeconds       float64 `yaml:"ramp_seconds"`
	StartInterval     float64 `yaml:"start_interval"`
	EndInterval       float64 `yaml:"end_interval"`
	BaseCap           float64 `yaml:"base_cap"`
	ExtraCap          float64 `yaml:"extra_cap"`
	MinShipDistance   float64 `yaml:"min_ship_distance"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	SeekerGate        float64 `yaml:"seeker_gate"`
	SeekerBase        float64 `yaml:"seeker_base"`
	SeekerScale       float64 `yaml:"seeker_scale"`
	LatcherGate       float64 `yaml:"latcher_gate"`
	LatcherThreshold  float64 `yaml:"latcher_threshold"`
	MidTierChance     float64 `yaml:"mid_tier_chance"`
}

// HomingTuning defines per-type attraction toward the ship.
type HomingTuning struct {
	Radius  float64 `yaml:"radius"`
	Drifter float64 `yaml:"drifter"`
	Seeker  float64 `yaml:"seeker"`
	Latcher float64 `yaml:"latcher"`
}

// MeterTuning defines the assimilation and beacon accumulators.
type MeterTuning struct {
	DrifterRate       float64    `yaml:"drifter_rate"`
	SeekerRate        float64    `yaml:"seeker_rate"`
	LatcherRate       float64    `yaml:"latcher_rate"`
	TierMultipliers   [3]float64 `yaml:"tier_multipliers"`
	Recovery          float64    `yaml:"recovery"`
	CrowdingThreshold int        `yaml:"crowding_threshold"`
	CrowdingPressure  float64    `yaml:"crowding_pressure"`
	KillRelief        float64    `yaml:"kill_relief"`
	ScoreBase         [3]float64 `yaml:"score_base"`
	ScoreBonus        [3]float64 `yaml:"score_bonus"` // drifter, seeker, latcher
	BeaconBase        [3]float64 `yaml:"beacon_base"`
	BeaconBonus       [3]float64 `yaml:"beacon_bonus"`
}

// EMPTuning defines the burst ability.
type EMPTuning struct {
	Radius        float64 `yaml:"radius"`
	Relief        float64 `yaml:"relief"`
	DetachSpeed   float64 `yaml:"detach_speed"`
	DetachGrace   float64 `yaml:"detach_grace"`
	RepelImpulse  float64 `yaml:"repel_impulse"`
	RepelGrace    float64 `yaml:"repel_grace"`
	PulseDuration float64 `yaml:"pulse_duration"`
}

// RoundTuning defines per-round escalation.
type RoundTuning struct {
	Total           int     `yaml:"total"`
	CooldownBase    float64 `yaml:"cooldown_base"`
	CooldownStep    float64 `yaml:"cooldown_step"`
	FinalBeaconRate float64 `yaml:"final_beacon_rate"`
	FinalCharges    int     `yaml:"final_charges"`
}

// ParticleTuning defines cosmetic bursts.
type ParticleTuning struct {
	Max        int     `yaml:"max"`
	HitBurst   int     `yaml:"hit_burst"` // per tier step
	EMPRing    int     `yaml:"emp_ring"`
	ThrustRate float64 `yaml:"thrust_rate"` // chance per tick while thrusting
}

// Validate rejects tunings the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.World.Width <= 0 || t.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world extents must be positive, got %vx%v", t.World.Width, t.World.Height))
	}
	if t.World.MaxDT <= 0 {
		errs = append(errs, errors.New("world.max_dt must be positive"))
	}
	if t.Ship.Radius <= 0 || t.Ship.MaxSpeed <= 0 {
		errs = append(errs, errors.New("ship radius and max_speed must be positive"))
	}
	if t.Bullet.Lifetime <= 0 {
		errs = append(errs, errors.New("bullet.lifetime must be positive"))
	}
	for i, r := range t.Clump.Radii {
		if r <= 0 {
			errs = append(errs, fmt.Errorf("clump.radii[%d] must be positive", i))
		}
	}
	if t.Director.RampSeconds <= 0 || t.Director.EndInterval <= 0 || t.Director.StartInterval < t.Director.EndInterval {
		errs = append(errs, errors.New("director intervals must be positive and non-increasing"))
	}
	if t.Rounds.Total < 1 {
		errs = append(errs, errors.New("rounds.total must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string onto a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset adjusts how quickly the director reaches full difficulty.
func ApplyPreset(t *Tuning, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		t.Director.RampSeconds = 120
	case DifficultyNormal:
		t.Director.RampSeconds = 90
	case DifficultyHard:
		t.Director.RampSeconds = 60
	}
}
