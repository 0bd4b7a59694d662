package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sakura-runner/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores, or the most recent runs.

Examples:
  sakura scores
  sakura scores --limit 25
  sakura scores --recent
  sakura scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores and runs")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clear scores: %w", err)
		}
		color.Yellow("All Sakura Runner scores cleared.")
		return nil
	}

	if flagScoresRecent {
		runs, err := store.RecentRuns(gameID, flagScoresLimit)
		if err != nil {
			return fmt.Errorf("retrieve runs: %w", err)
		}
		printRuns(os.Stdout, runs)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}
	printScores(os.Stdout, scores)

	if len(scores) > 0 {
		if stats, err := store.GetGameStats(gameID); err == nil {
			printStats(os.Stdout, stats)
		}
	}
	return nil
}

var (
	titleColor  = color.New(color.FgHiMagenta, color.Bold)
	headerColor = color.New(color.FgWhite, color.Underline)
	goldColor   = color.New(color.FgYellow, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

func printScores(w io.Writer, scores []storage.ScoreEntry) {
	titleColor.Fprintln(w, "High Scores - Sakura Runner")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'sakura play' to set the first high score!")
		return
	}

	headerColor.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	for i, entry := range scores {
		line := fmt.Sprintf("  %-4d  %-10s  %s\n", i+1, fmt.Sprintf("%dm", entry.Score), entry.CreatedAt.Format("2006-01-02 15:04"))
		if i == 0 {
			goldColor.Fprint(w, line)
			continue
		}
		fmt.Fprint(w, line)
	}
}

func printRuns(w io.Writer, runs []storage.RunEntry) {
	titleColor.Fprintln(w, "Recent Runs - Sakura Runner")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	headerColor.Fprintf(w, "  %-16s  %-8s  %-7s  %s\n", "Date", "Score", "Flowers", "Time")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-16s  %-8s  %-7d  %ds\n",
			r.CreatedAt.Format("2006-01-02 15:04"), fmt.Sprintf("%dm", r.Score), r.PowerUps, r.Duration)
	}
}

func printStats(w io.Writer, stats *storage.GameStats) {
	fmt.Fprintln(w)
	goldColor.Fprintf(w, "Best: %dm", stats.HighScore)
	dimColor.Fprintf(w, "  runs %d, average %.0fm, %d flowers, longest %ds\n",
		stats.GamesCount, stats.AvgScore, stats.TotalPowerUps, stats.LongestRun)
}
