package config

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// DifficultyManager maps round-elapsed time onto the director's spawn
// parameters. Difficulty grows linearly to 1 over the ramp and then holds.
type DifficultyManager struct {
	cfg DirectorTuning
}

// NewDifficultyManager creates a difficulty manager for the given director tuning.
func NewDifficultyManager(cfg DirectorTuning) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// Level returns the difficulty in [0, 1] after elapsed seconds of the round.
func (d *DifficultyManager) Level(elapsed float64) float64 {
	ramp := d.cfg.RampSeconds
	if ramp <= 0 {
		ramp = 1 // Prevent division by zero
	}
	return core.ClampF(elapsed/ramp, 0, 1)
}

// SpawnInterval returns seconds between spawns, eased from start to end.
func (d *DifficultyManager) SpawnInterval(elapsed float64) float64 {
	return core.Lerp(d.cfg.StartInterval, d.cfg.EndInterval, core.EaseOutCubic(d.Level(elapsed)))
}

// PopulationCap returns the maximum number of free clumps allowed.
func (d *DifficultyManager) PopulationCap(elapsed float64) int {
	return int(math.Floor(d.cfg.BaseCap + d.Level(elapsed)*d.cfg.ExtraCap))
}
