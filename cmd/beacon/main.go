// beacon is a terminal arcade game: hold off a parasitic swarm long enough
// to charge a rescue beacon.
//
// Usage:
//
//	beacon play              - Play in the terminal (standalone or hosted)
//	beacon sim               - Run headless autopilot batches, or act as an embedded core
//	beacon serve             - Start SSH server for remote play
//	beacon scores            - Show the run ledger
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Seed number or string (default: random)
//	--db <path>          - Set database path (default: ~/.beacon/runs.db)
//	--config <path>      - Tuning YAML (default: search path, then built-in)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/swarm-beacon/internal/config"
	"github.com/vovakirdan/swarm-beacon/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       string
	flagDBPath     string
	flagConfig     string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Swarm Beacon - survive the swarm, charge the beacon",
	Long: `Swarm Beacon is a toroidal arcade shooter. Clumps of a parasitic swarm
drift in, home on your ship and latch onto the hull. Shoot them apart, shake
them off with the EMP, and keep assimilation below 100% until the rescue
beacon is fully charged.

Available commands:
  play     - Play in the terminal
  sim      - Headless autopilot batches / embedded core
  serve    - Start SSH server for remote play
  scores   - View the run ledger

Examples:
  beacon play
  beacon play --seed daily-42 --difficulty hard
  beacon play --query "standalone&username=ace"
  beacon sim --seeds 200 --out ./runs
  beacon serve --ssh :2222
  beacon scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "RNG seed: a number, or any string to hash (empty = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.beacon/runs.db", "Path to run ledger database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger creates a logger at the --log-level threshold.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// loadTuning resolves the tuning file and applies the difficulty preset.
func loadTuning() (config.Tuning, error) {
	t, err := config.Load(flagConfig)
	if err != nil {
		return config.Tuning{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.Tuning{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&t, preset)
	}
	return t, nil
}

// parseSeed turns the --seed flag into a seed. Decimal and 0x-prefixed
// numbers are taken modulo 2^32, with zero replaced by core.FallbackSeed;
// anything else is hashed. An empty flag yields ok=false.
func parseSeed(s string) (seed uint32, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		seed = uint32(n) //#nosec G115 -- seeds are taken modulo 2^32
		if seed == 0 {
			seed = core.FallbackSeed
		}
		return seed, true
	}
	return core.SeedFromString(s), true
}
