package telemetry

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/swarm-beacon/internal/bot"
	"github.com/vovakirdan/swarm-beacon/internal/config"
	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
)

// BatchOptions controls a headless batch.
type BatchOptions struct {
	FPS         int         // fixed step rate; default 60
	MaxSeconds  float64     // simulated time per run before it is aborted; default 900
	SampleEvery int         // ticks between samples; 0 disables sampling
	Workers     int         // concurrent runs; default GOMAXPROCS
	Profile     bot.Profile // autopilot
	Output      *Output     // may be nil
	Logger      *log.Logger // may be nil
}

func (o *BatchOptions) defaults() {
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.MaxSeconds <= 0 {
		o.MaxSeconds = 900
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// RunBatch plays one autopilot run per seed and returns the records in seed
// order. Runs that reach MaxSeconds are aborted and recorded as such.
func RunBatch(ctx context.Context, t config.Tuning, seeds []uint32, opts BatchOptions) ([]RunRecord, error) {
	opts.defaults()
	records := make([]RunRecord, len(seeds))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, seed := range seeds {
		g.Go(func() error {
			rec, samples, err := RunOne(ctx, t, seed, opts)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			records[i] = rec
			mu.Lock()
			defer mu.Unlock()
			if err := opts.Output.WriteSamples(samples); err != nil {
				return err
			}
			if err := opts.Output.WriteRun(rec); err != nil {
				return err
			}
			opts.Logger.Debug("run finished", "seed", seed, "outcome", rec.Outcome, "score", rec.Score, "round", rec.Round)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// RunOne plays a single seed to its outcome.
func RunOne(ctx context.Context, t config.Tuning, seed uint32, opts BatchOptions) (RunRecord, []Sample, error) {
	res, err := RunHosted(ctx, t, game.DefaultHostConfig(seed), opts)
	if err != nil {
		return RunRecord{}, nil, err
	}
	return res.Record, res.Samples, nil
}

// Result is a finished headless run.
type Result struct {
	Outcome game.OutcomeRecord
	Record  RunRecord
	Samples []Sample
}

// RunHosted plays one run under a host configuration. The time limit always
// ends the run with an abort, whatever the host allows the player.
func RunHosted(ctx context.Context, t config.Tuning, h game.HostConfig, opts BatchOptions) (Result, error) {
	opts.defaults()
	dt := 1 / float64(opts.FPS)
	maxTicks := uint64(opts.MaxSeconds * float64(opts.FPS))

	gm := game.New(t)
	h.AllowAbort = true
	gm.ApplyInit(h)

	pilot := bot.NewPilot(opts.Profile)
	var (
		counter Counter
		samples []Sample
		ticks   uint64
	)
	for {
		if ticks%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		snap := gm.Snapshot()
		in := pilot.Decide(&snap)
		if ticks >= maxTicks {
			in = core.NewInputFrame()
			switch snap.Phase {
			case game.PhaseTitle, game.PhaseRoundComplete:
				in.Set(core.ActionConfirm)
			default:
				in.Set(core.ActionAbort)
			}
		}
		res := gm.Step(in, dt)
		ticks++
		counter.Observe(res.Events)
		if res.Outcome != nil {
			return Result{Outcome: *res.Outcome, Record: counter.Record(*res.Outcome, ticks), Samples: samples}, nil
		}
		if opts.SampleEvery > 0 && res.Phase == game.PhasePlaying && ticks%uint64(opts.SampleEvery) == 0 {
			after := gm.Snapshot()
			samples = append(samples, NewSample(&after))
		}
		if ticks > maxTicks+uint64(opts.FPS) {
			return Result{}, fmt.Errorf("run did not terminate after abort (phase %s)", res.Phase)
		}
	}
}

// Seeds returns n consecutive seeds starting at first, skipping zero.
func Seeds(first uint32, n int) []uint32 {
	out := make([]uint32, 0, n)
	for s := first; len(out) < n; s++ {
		if s == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}
