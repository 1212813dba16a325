package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swarm-beacon/internal/game"
	"github.com/vovakirdan/swarm-beacon/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresGame  string
	flagScoresUser  string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run ledger",
	Long: `Display the best recorded runs and a summary of the ledger.

Examples:
  beacon scores
  beacon scores --limit 25
  beacon scores --user ace`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresGame, "game", game.DefaultGameID, "Game ID to show")
	scoresCmd.Flags().StringVar(&flagScoresUser, "user", "", "Show this player's latest runs instead")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run ledger: %w", err)
	}
	defer store.Close()
	return printScores(cmd.OutOrStdout(), store, flagScoresGame, flagScoresUser, flagScoresLimit)
}

func printScores(w io.Writer, store *storage.Store, gameID, user string, limit int) error {
	var (
		runs  []storage.RunEntry
		err   error
		title string
	)
	if user != "" {
		runs, err = store.PlayerRuns(user, limit)
		title = fmt.Sprintf("Latest runs - %s", user)
	} else {
		runs, err = store.TopRuns(gameID, limit)
		title = fmt.Sprintf("Top runs - %s", gameID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, title)
	fmt.Fprintln(w)
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'beacon play' to set the first score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-12s  %-7s  %-7s  %-5s  %-8s  %s\n", "Rank", "Player", "Outcome", "Score", "Round", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-7s  %-7s  %-5s  %-8s  %s\n", "----", "------", "-------", "-----", "-----", "----", "----")
	for i, e := range runs {
		fmt.Fprintf(w, "  %-4d  %-12s  %-7s  %-7d  %-5d  %-8s  %s\n",
			i+1, truncate(e.Username, 12), e.Outcome, e.Score, e.Round,
			formatMs(e.TimeSurvivedMs), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.GameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %d  Wins: %d  Best: %d  Avg: %.0f\n", st.Runs, st.Wins, st.BestScore, st.AvgScore)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatMs(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
