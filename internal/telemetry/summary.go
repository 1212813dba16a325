package telemetry

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch of runs.
type Summary struct {
	Runs    int
	Wins    int
	Losses  int
	Aborts  int
	WinRate float64

	ScoreMean   float64
	ScoreStdDev float64
	ScoreP10    float64
	ScoreP50    float64
	ScoreP90    float64

	RoundMean        float64
	SurvivalMeanSec  float64
	MaxAssimMean     float64
	KillsPerMinute   float64
	ShotAccuracyMean float64
}

// Summarize computes batch statistics. An empty batch yields a zero Summary.
func Summarize(runs []RunRecord) Summary {
	s := Summary{Runs: len(runs)}
	if len(runs) == 0 {
		return s
	}

	scores := make([]float64, len(runs))
	rounds := make([]float64, len(runs))
	survival := make([]float64, len(runs))
	assim := make([]float64, len(runs))
	var accuracy []float64
	var kills, minutes float64
	for i, r := range runs {
		switch r.Outcome {
		case "win":
			s.Wins++
		case "lose":
			s.Losses++
		case "abort":
			s.Aborts++
		}
		scores[i] = float64(r.Score)
		rounds[i] = float64(r.Round)
		survival[i] = float64(r.TimeSurvivedMs) / 1000
		assim[i] = r.MaxAssimilation
		kills += float64(r.Kills)
		minutes += float64(r.Ticks) / 60 / 60
		if r.Shots > 0 {
			accuracy = append(accuracy, float64(r.Kills)/float64(r.Shots))
		}
	}

	s.WinRate = float64(s.Wins) / float64(len(runs))
	s.ScoreMean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		s.ScoreStdDev = stat.StdDev(scores, nil)
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	s.ScoreP10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.ScoreP50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.ScoreP90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	s.RoundMean = stat.Mean(rounds, nil)
	s.SurvivalMeanSec = stat.Mean(survival, nil)
	s.MaxAssimMean = stat.Mean(assim, nil)
	if minutes > 0 {
		s.KillsPerMinute = kills / minutes
	}
	if len(accuracy) > 0 {
		s.ShotAccuracyMean = stat.Mean(accuracy, nil)
	}
	return s
}

// String renders the summary as an aligned text block.
func (s Summary) String() string {
	var sb strings.Builder
	row := func(label, format string, args ...any) {
		fmt.Fprintf(&sb, "%-18s "+format+"\n", append([]any{label}, args...)...)
	}
	row("runs", "%d", s.Runs)
	row("outcomes", "%d win / %d lose / %d abort (%.1f%% win)", s.Wins, s.Losses, s.Aborts, s.WinRate*100)
	row("score", "mean %.1f  sd %.1f", s.ScoreMean, nanZero(s.ScoreStdDev))
	row("score quantiles", "p10 %.0f  p50 %.0f  p90 %.0f", s.ScoreP10, s.ScoreP50, s.ScoreP90)
	row("round reached", "%.2f", s.RoundMean)
	row("survival (s)", "%.1f", s.SurvivalMeanSec)
	row("peak assimilation", "%.1f%%", s.MaxAssimMean)
	row("kills/min", "%.1f", s.KillsPerMinute)
	row("accuracy", "%.1f%%", s.ShotAccuracyMean*100)
	return sb.String()
}

func nanZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
