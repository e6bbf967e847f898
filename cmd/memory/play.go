package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/engine"
	"github.com/vovakirdan/memory-match/internal/platform/tui"
	"github.com/vovakirdan/memory-match/internal/storage"
)

var (
	flagMode       string
	flagDifficulty string
	flagTheme      string
	flagTimer      int
	flagPlayers    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a memory game in the terminal.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Flip the card under the cursor
  R            - Restart
  P            - Pause (classic and zen modes)
  Q/Ctrl+C     - Quit

Modes:
  classic      - Relaxed solo play, score and achievements on
  timer        - Beat the countdown; shorter on harder boards
  zen          - No clock pressure, no scoring
  multiplayer  - 2-4 players take turns on one keyboard

Examples:
  memory play
  memory play --mode timer --difficulty medium --timer 120
  memory play --mode multiplayer
  memory play --theme numbers --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Game mode: classic, timer, zen, multiplayer")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "easy", "Board size: easy, medium, hard")
	playCmd.Flags().StringVar(&flagTheme, "theme", "avataaars", "Card theme (numbers, or any DiceBear style)")
	playCmd.Flags().IntVar(&flagTimer, "timer", 0, "Timer mode duration in seconds (0 = mode default)")
	playCmd.Flags().StringVar(&flagPlayers, "players", "", "Comma-separated player names for multiplayer (skips the name form)")
}

func runPlay(cmd *cobra.Command, args []string) {
	mode, err := config.ParseMode(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'memory modes' to see available modes.")
		os.Exit(1)
	}
	difficulty, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'memory modes' to see available difficulties.")
		os.Exit(1)
	}

	tables := loadTables()

	// Open game storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := engine.Options{
		Tables:        tables,
		Seed:          flagSeed,
		Mode:          mode,
		Difficulty:    difficulty,
		Theme:         flagTheme,
		TimerDuration: flagTimer,
	}
	if store != nil {
		opts.KV = store
		opts.Stats = store

		// Saved settings fill in whatever the user left at the default.
		if saved, ok := engine.LoadSettings(store); ok {
			if !cmd.Flags().Changed("mode") && saved.Mode != "" {
				opts.Mode = saved.Mode
			}
			if !cmd.Flags().Changed("difficulty") && saved.Difficulty != "" {
				opts.Difficulty = saved.Difficulty
			}
			if !cmd.Flags().Changed("theme") && saved.Theme != "" {
				opts.Theme = saved.Theme
			}
			if !cmd.Flags().Changed("timer") && saved.TimerDuration > 0 {
				opts.TimerDuration = saved.TimerDuration
			}
		}
	}
	mode, difficulty = opts.Mode, opts.Difficulty

	// Warn early when the terminal cannot fit the board; the game still
	// runs, it just scrolls.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		pairs := tables.Difficulty(difficulty).Pairs
		if needW, needH := boardFootprint(pairs); w < needW || h < needH {
			fmt.Fprintf(os.Stderr,
				"Warning: terminal is %dx%d, the %s board wants at least %dx%d\n",
				w, h, difficulty, needW, needH)
		}
	}

	flash := tui.NewFlashNotifier()
	opts.Notifier = flash

	game := engine.New(opts)
	defer game.Close()

	if mode == config.ModeMultiplayer {
		if flagPlayers != "" {
			if v := game.SetPlayerNames(strings.Split(flagPlayers, ",")); !v.IsValid {
				for _, e := range v.Errors {
					fmt.Fprintf(os.Stderr, "Error: %s\n", e)
				}
				os.Exit(1)
			}
		} else {
			ok, formErr := tui.RunNameForm(game)
			if formErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", formErr)
				os.Exit(1)
			}
			if !ok {
				return
			}
		}
		game.StartGame()
	}

	runErr := tui.RunBoard(game, store, flash)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// boardFootprint estimates the terminal cells a board needs: bordered
// cards about 14 columns wide and 3 rows tall, plus the status area.
func boardFootprint(pairs int) (w, h int) {
	cards := pairs * 2
	cols := 5
	switch {
	case cards > 40:
		cols = 10
	case cards > 20:
		cols = 8
	}
	rows := (cards + cols - 1) / cols
	return cols * 14, rows*3 + 6
}
