package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/platform/tui"
	"github.com/vovakirdan/memory-match/internal/storage"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 scores across all modes and difficulties.

Examples:
  memory scores
  memory scores --tui
  memory scores --db ./scores.db`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores and achievements interactively")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(storage.LeaderboardSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	if flagScoresTUI {
		if err := tui.RunScoreboard(scores, achievements.Load(store)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Leaderboard")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'memory play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-14s  %-8s  %-6s  %-6s  %-10s  %-11s  %s\n",
		"Rank", "Player", "Score", "Moves", "Time", "Difficulty", "Mode", "Date")
	fmt.Printf("  %-4s  %-14s  %-8s  %-6s  %-6s  %-10s  %-11s  %s\n",
		"----", "------", "-----", "-----", "----", "----------", "----", "----")

	for i, entry := range scores {
		name := entry.PlayerName
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %-4d  %-14s  %-8d  %-6d  %-6s  %-10s  %-11s  %s\n",
			i+1,
			name,
			entry.Score,
			entry.Moves,
			fmt.Sprintf("%d:%02d", entry.TimeSeconds/60, entry.TimeSeconds%60),
			entry.Difficulty,
			entry.Mode,
			entry.CreatedAt.Format("2006-01-02 15:04"),
		)
		if len(entry.Achievements) > 0 {
			fmt.Printf("        unlocked: %s\n", strings.Join(entry.Achievements, ", "))
		}
	}

	fmt.Println()
	if high, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}
