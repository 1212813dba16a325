// Package telemetry records headless runs: per-run outcome rows, periodic
// meter samples and aggregate statistics across a batch of seeds.
package telemetry

import "github.com/vovakirdan/swarm-beacon/internal/game"

// RunRecord is one finished (or timed-out) run.
type RunRecord struct {
	Seed            uint32  `csv:"seed"`
	Outcome         string  `csv:"outcome"`
	Score           int     `csv:"score"`
	Round           int     `csv:"round"`
	TimeSurvivedMs  int64   `csv:"time_survived_ms"`
	MaxAssimilation float64 `csv:"max_assimilation"`
	BeaconCharge    float64 `csv:"beacon_charge"`
	Ticks           uint64  `csv:"ticks"`
	Kills           int     `csv:"kills"`
	Latches         int     `csv:"latches"`
	EMPs            int     `csv:"emps"`
	Shots           int     `csv:"shots"`
}

// Sample is a periodic reading of a run in progress.
type Sample struct {
	Seed          uint32  `csv:"seed"`
	Tick          uint64  `csv:"tick"`
	Round         int     `csv:"round"`
	RoundTime     float64 `csv:"round_time"`
	Difficulty    float64 `csv:"difficulty"`
	Assimilation  float64 `csv:"assimilation"`
	Beacon        float64 `csv:"beacon"`
	Score         int     `csv:"score"`
	FreeClumps    int     `csv:"free_clumps"`
	LatchedClumps int     `csv:"latched_clumps"`
}

// NewSample reads a snapshot into a Sample.
func NewSample(snap *game.Snapshot) Sample {
	s := Sample{
		Seed:         snap.Seed,
		Tick:         snap.Tick,
		Round:        snap.Round,
		RoundTime:    snap.RoundTime,
		Difficulty:   snap.Difficulty,
		Assimilation: snap.Meters.Assimilation,
		Beacon:       snap.Meters.Beacon,
		Score:        snap.Meters.Score,
	}
	for _, c := range snap.Clumps {
		if c.Latched {
			s.LatchedClumps++
		} else {
			s.FreeClumps++
		}
	}
	return s
}

// Counter tallies gameplay events over a run.
type Counter struct {
	Kills   int
	Latches int
	EMPs    int
	Shots   int
}

// Observe folds one step's events into the tally.
func (c *Counter) Observe(events []game.Event) {
	for _, e := range events {
		switch e.Kind {
		case game.EventClumpDestroyed:
			c.Kills++
		case game.EventLatched:
			c.Latches++
		case game.EventEMP:
			c.EMPs++
		case game.EventShotFired:
			c.Shots++
		}
	}
}

// Record combines the outcome of a run with its tally.
func (c *Counter) Record(rec game.OutcomeRecord, ticks uint64) RunRecord {
	return RunRecord{
		Seed:            rec.Seed,
		Outcome:         rec.Outcome.String(),
		Score:           rec.Score,
		Round:           rec.Round,
		TimeSurvivedMs:  rec.TimeSurvivedMs,
		MaxAssimilation: rec.MaxAssimilation,
		BeaconCharge:    rec.BeaconCharge,
		Ticks:           ticks,
		Kills:           c.Kills,
		Latches:         c.Latches,
		EMPs:            c.EMPs,
		Shots:           c.Shots,
	}
}
