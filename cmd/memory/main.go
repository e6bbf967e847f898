// memory is a terminal memory-matching card game.
//
// Usage:
//
//	memory play              - Play a game
//	memory modes             - List game modes and difficulties
//	memory scores            - Show the leaderboard
//	memory achievements      - Show achievement progress
//	memory serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible deals
//	--db <path>      - Set database path (default: ~/.memory-match/scores.db)
//	--config <path>  - Path to custom mode config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-match/internal/config"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memory",
	Short: "Memory Match - a card matching game in your terminal",
	Long: `Memory Match is a terminal card game: flip two cards at a time and
find all the matching pairs.

Available commands:
  play          - Play a game
  modes         - List game modes and difficulties
  scores        - View the leaderboard
  achievements  - View achievement progress
  serve         - Start SSH server for remote play

Examples:
  memory play
  memory play --mode timer --difficulty medium
  memory play --mode multiplayer
  memory scores
  memory serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.memory-match/scores.db", "Path to game database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom mode config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadTables resolves the mode tables from the config chain, falling back
// to the embedded defaults on error.
func loadTables() config.Tables {
	tables, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		return config.DefaultTables()
	}
	return tables
}
