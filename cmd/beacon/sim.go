package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/swarm-beacon/internal/bot"
	"github.com/vovakirdan/swarm-beacon/internal/config"
	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
	"github.com/vovakirdan/swarm-beacon/internal/host"
	"github.com/vovakirdan/swarm-beacon/internal/telemetry"
)

var (
	flagSimSeeds       int
	flagSimOut         string
	flagSimMaxSeconds  float64
	flagSimWorkers     int
	flagSimSampleEvery int
	flagSimEmbedded    bool
	flagSimOrigin      string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot batches or act as an embedded core",
	Long: `Run the simulation without a terminal.

Batch mode plays one autopilot run per seed at a fixed step of 1/fps and
prints aggregate statistics. With --out, per-run rows go to runs.csv and
per-second samples to samples.csv.

Embedded mode (--embedded) speaks the host protocol over stdin/stdout as
JSON lines: it announces itself with a ready message, plays one autopilot
run for every accepted init message and answers with exactly one outcome.

Examples:
  beacon sim --seeds 100
  beacon sim --seeds 500 --seed 1000 --out ./runs --difficulty hard
  echo '{"type":"init","seed":"daily-42"}' | beacon sim --embedded`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSeeds, "seeds", 50, "Number of runs (consecutive seeds starting at --seed)")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Directory for runs.csv and samples.csv")
	simCmd.Flags().Float64Var(&flagSimMaxSeconds, "max-seconds", 900, "Simulated seconds before a run is aborted")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Concurrent runs (0 = GOMAXPROCS)")
	simCmd.Flags().IntVar(&flagSimSampleEvery, "sample-every", 60, "Ticks between samples (0 disables)")
	simCmd.Flags().BoolVar(&flagSimEmbedded, "embedded", false, "Act as an embedded core over stdin/stdout")
	simCmd.Flags().StringVar(&flagSimOrigin, "host-origin", host.AnyOrigin, "Only accept host messages from this origin")
}

func runSim(cmd *cobra.Command, _ []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, "beacon-sim")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := telemetry.BatchOptions{
		FPS:         flagFPS,
		MaxSeconds:  flagSimMaxSeconds,
		SampleEvery: flagSimSampleEvery,
		Workers:     flagSimWorkers,
		Profile:     bot.DefaultProfile(),
		Logger:      logger,
	}

	if flagSimEmbedded {
		return serveEmbedded(ctx, os.Stdin, os.Stdout, tuning, flagSimOrigin, opts, logger)
	}

	first, ok := parseSeed(flagSeed)
	if !ok {
		first = core.RandomSeed()
	}
	out, err := telemetry.NewOutput(flagSimOut)
	if err != nil {
		return err
	}
	opts.Output = out

	logger.Info("running batch", "runs", flagSimSeeds, "first_seed", first, "difficulty", flagDifficulty)
	runs, err := telemetry.RunBatch(ctx, tuning, telemetry.Seeds(first, flagSimSeeds), opts)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), telemetry.Summarize(runs).String())
	return nil
}

// serveEmbedded runs the host protocol over r and w until r is exhausted or
// ctx is done. Each accepted init starts a fresh autopilot run whose outcome
// is reported once.
func serveEmbedded(ctx context.Context, r io.Reader, w io.Writer, t config.Tuning, origin string, opts telemetry.BatchOptions, logger *log.Logger) error {
	transport := host.NewLineTransport(r, w)
	bridge := host.NewBridge(transport, origin, logger)
	if err := bridge.Ready(game.DefaultGameID); err != nil {
		return fmt.Errorf("sending ready: %w", err)
	}

	msgs, errs := transport.Listen(ctx)
	for {
		var msg host.Message
		select {
		case <-ctx.Done():
			// The reader may still be blocked on stdin; leave it behind.
			return nil
		case m, ok := <-msgs:
			if !ok {
				return <-errs
			}
			msg = m
		}
		cfg, ok := bridge.Handle(msg)
		if !ok {
			continue
		}
		res, err := telemetry.RunHosted(ctx, t, cfg, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if _, err := bridge.Outcome(res.Outcome); err != nil {
			return fmt.Errorf("sending outcome: %w", err)
		}
	}
}
