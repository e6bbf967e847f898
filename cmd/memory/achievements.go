package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/storage"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievement progress",
	Long: `Display every achievement and whether it has been unlocked.

Examples:
  memory achievements`,
	Run: runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	set := achievements.Load(store)

	unlocked := 0
	for _, a := range set {
		if a.Unlocked {
			unlocked++
		}
	}

	fmt.Printf("Achievements (%d/%d unlocked)\n", unlocked, len(set))
	fmt.Println()

	for _, a := range set {
		mark := " "
		when := ""
		if a.Unlocked {
			mark = "✓"
			if a.UnlockedAt > 0 {
				when = time.UnixMilli(a.UnlockedAt).Format(" (2006-01-02)")
			}
		}
		fmt.Printf("  %s %s %-20s %s%s\n", mark, a.Icon, a.Name, a.Description, when)
	}
}
