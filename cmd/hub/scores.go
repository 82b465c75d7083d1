package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-world/internal/registry"
	"github.com/vovakirdan/arcade-world/internal/storage"
)

var (
	flagClear   bool
	flagAllRuns bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 runs for the specified game, or every run with --all.

Examples:
  hub scores snake
  hub scores dino --all
  hub scores puzzle --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score for the game")
	scoresCmd.Flags().BoolVar(&flagAllRuns, "all", false, "List every recorded run instead of the top 10")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q; run 'hub list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", info.Title)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAllRuns {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", info.Title)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'hub play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-5s  %-7s  %s\n", "Rank", "Score", "Time", "Moves", "Result", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-5s  %-7s  %s\n", "----", "-----", "----", "-----", "------", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %-6s  %-5d  %-7s  %s\n",
			i+1, e.Score, e.Elapsed.Truncate(100*time.Millisecond), e.Moves, e.Outcome, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Runs: %d  Wins: %d  Average: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}
