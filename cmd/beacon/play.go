package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/swarm-beacon/internal/audio"
	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
	"github.com/vovakirdan/swarm-beacon/internal/host"
	"github.com/vovakirdan/swarm-beacon/internal/platform/tui"
	"github.com/vovakirdan/swarm-beacon/internal/storage"
)

var (
	flagQuery      string
	flagHostIn     string
	flagHostOut    string
	flagHostOrigin string
	flagUsername   string
	flagAllowAbort bool
	flagSound      bool
	flagAutopilot  bool
	flagMono       bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  ←/→ or A/D  - Rotate
  ↑/W         - Thrust
  ↓/S         - Brake
  Space       - Fire
  E           - EMP
  P/Esc       - Pause
  M           - Mute
  X           - Abort (when the host allows it)
  Enter       - Launch / next round
  R           - Back to title (paused or after the result)
  ?           - Help
  Q/Ctrl+C    - Quit

Modes:
  Standalone (default) - the game configures itself from flags or --query.
  Hosted - with --host-in/--host-out the game announces itself with a ready
  message, waits for an init message and reports one outcome per run.

Examples:
  beacon play
  beacon play --seed 12345 --username ace
  beacon play --query "standalone&username=ace&seed=daily-42"
  beacon play --host-in ./to-game.fifo --host-out ./from-game.fifo --host-origin https://arcade.example
  beacon play --autopilot --sound`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagQuery, "query", "", "Bootstrap query string (standalone, gameId, roomId, username, seed)")
	playCmd.Flags().StringVar(&flagHostIn, "host-in", "", "File or FIFO carrying host messages (JSON lines)")
	playCmd.Flags().StringVar(&flagHostOut, "host-out", "", "File or FIFO receiving game messages (JSON lines)")
	playCmd.Flags().StringVar(&flagHostOrigin, "host-origin", host.AnyOrigin, "Only accept host messages from this origin")
	playCmd.Flags().StringVar(&flagUsername, "username", "", "Player name shown in the HUD and ledger")
	playCmd.Flags().BoolVar(&flagAllowAbort, "allow-abort", true, "Allow aborting a run in standalone mode")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound effects")
	playCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let the autopilot fly (demo mode)")
	playCmd.Flags().BoolVar(&flagMono, "mono", false, "Disable colors")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is taken by the game)")
}

// standaloneHost builds the host config for a standalone run from the
// bootstrap query and flags. Flags win over the query.
func standaloneHost(query, username, seed string, allowAbort bool) (game.HostConfig, bool, error) {
	h := game.DefaultHostConfig(core.RandomSeed())
	standalone := true
	if query != "" {
		b, err := host.ParseQuery(query)
		if err != nil {
			return game.HostConfig{}, false, err
		}
		h = b.Config
		standalone = b.Standalone
	}
	h.AllowAbort = allowAbort
	if username != "" {
		h.Username = username
	}
	if s, ok := parseSeed(seed); ok {
		h.Seed = s
	}
	return h, standalone, nil
}

func runPlay(cmd *cobra.Command, _ []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	logOut := io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "beacon")

	hostCfg, standalone, err := standaloneHost(flagQuery, flagUsername, flagSeed, flagAllowAbort)
	if err != nil {
		return err
	}
	// An explicit standalone query overrides host files.
	hosted := flagHostIn != "" || flagHostOut != ""
	embedded := hosted && (flagQuery == "" || !standalone)
	if !standalone && !hosted {
		return fmt.Errorf("query is not standalone and no --host-in/--host-out was given")
	}

	opts := tui.Options{
		TickRate:  flagFPS,
		Tuning:    tuning,
		Host:      hostCfg,
		Autopilot: flagAutopilot,
		Mono:      flagMono,
		Logger:    logger,
	}

	if embedded {
		if flagHostIn == "" || flagHostOut == "" {
			return fmt.Errorf("--host-in and --host-out must be given together")
		}
		in, err := os.Open(flagHostIn)
		if err != nil {
			return fmt.Errorf("cannot open host input: %w", err)
		}
		defer in.Close()
		out, err := os.OpenFile(flagHostOut, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open host output: %w", err)
		}
		defer out.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		transport := host.NewLineTransport(in, out)
		inbound, readErrs := transport.Listen(ctx)
		go logHostErrors(readErrs, logger)
		opts.Bridge = host.NewBridge(transport, flagHostOrigin, logger)
		opts.Inbound = inbound
	}

	// Store is best-effort, like sound: the game runs without it.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run ledger: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	if flagSound {
		sm := audio.NewSoundManager(audio.DefaultConfig(), logger)
		sm.Init()
		defer sm.Close()
		opts.Sounds = sm
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs a terminal; use 'beacon sim' for headless runs")
	}
	return tui.Run(opts)
}

// logHostErrors reports a failed host read. The game keeps running; it just
// stops hearing from the host.
func logHostErrors(errs <-chan error, logger *log.Logger) {
	for err := range errs {
		logger.Warn("host input failed", "error", err)
	}
}
