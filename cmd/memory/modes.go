package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-match/internal/config"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List game modes and difficulties",
	Long:  `Shows every game mode and board-size preset with its key rules.`,
	Run:   runModes,
}

func runModes(cmd *cobra.Command, args []string) {
	tables := loadTables()

	fmt.Println("Game modes:")
	fmt.Println()
	for _, mode := range config.Modes() {
		cfg := tables.Resolve(mode, config.DifficultyEasy, 0)
		var rules []string
		if cfg.HasTimer {
			rules = append(rules, fmt.Sprintf("timed (%ds base)", cfg.TimerDuration))
		}
		if cfg.IsMultiplayer {
			rules = append(rules, fmt.Sprintf("%d-%d players, turn based", cfg.MinPlayers, cfg.MaxPlayers))
		}
		if !cfg.ScoringEnabled {
			rules = append(rules, "no scoring")
		}
		if cfg.CanPause {
			rules = append(rules, "pausable")
		}
		line := fmt.Sprintf("  %-12s", mode)
		for i, r := range rules {
			if i == 0 {
				line += " " + r
			} else {
				line += ", " + r
			}
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-10s  %s\n", "Name", "Pairs", "Cards", "Score multiplier")
	for _, d := range config.Difficulties() {
		row := tables.Difficulty(d)
		fmt.Printf("  %-8s  %-6d  %-10d  ×%.1f\n", d, row.Pairs, row.Pairs*2, row.ScoreMultiplier)
	}

	fmt.Println()
	fmt.Println("Run 'memory play --mode <mode> --difficulty <name>' to play.")
}
