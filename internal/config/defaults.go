package config

import (
	_ "embed"
)

//go:embed defaults/modes.yaml
var defaultTablesYAML []byte

// DefaultTables returns the built-in mode and difficulty tables, used when
// neither the embedded YAML nor any file on disk can be parsed.
func DefaultTables() Tables {
	singles := func(initial, complete string) ModeConfig {
		return ModeConfig{
			MinPlayers:          1,
			MaxPlayers:          1,
			ShowStreak:          true,
			ShowEfficiency:      true,
			CanPause:            true,
			AutoSave:            true,
			ScoringEnabled:      true,
			AchievementsEnabled: true,
			LeaderboardEnabled:  true,
			InitialMessage:      initial,
			GameCompleteMessage: complete,
			TimeUpMessage:       "Time's up! Try again.",
			WinMessage:          "GAME OVER",
		}
	}

	classic := singles("Flip a card to start!", "Congratulations! You cleared the board!")

	timer := singles("Quick! Find the pairs before time runs out!", "Amazing! You beat the clock!")
	timer.HasTimer = true
	timer.TimerDuration = 60
	timer.TimerStartsOnFirstMove = true
	timer.CanPause = false
	timer.ShowTimeRemaining = true
	timer.TimeUpMessage = "Time's up! Be faster next round."

	zen := singles("Breathe deep and find the pairs at your own pace.", "A moment of calm. Board cleared.")
	zen.ShowStreak = false
	zen.ShowEfficiency = false
	zen.AutoSave = false
	zen.ScoringEnabled = false
	zen.AchievementsEnabled = false
	zen.LeaderboardEnabled = false

	multi := ModeConfig{
		IsMultiplayer:          true,
		MinPlayers:             2,
		MaxPlayers:             4,
		TurnBased:              true,
		PlayersContinueOnMatch: true,
		PlayerTurnSeconds:      10,
		ShowPlayerTurn:         true,
		ShowMultiplayerScore:   true,
		AutoSave:               true,
		ScoringEnabled:         true,
		AchievementsEnabled:    true,
		LeaderboardEnabled:     true,
		InitialMessage:         "Pick your names and start matching!",
		GameCompleteMessage:    "GAME OVER",
		TimeUpMessage:          "Time's up! Try again.",
		WinMessage:             "GAME OVER",
	}

	return Tables{
		Modes: map[Mode]ModeConfig{
			ModeClassic:     classic,
			ModeTimer:       timer,
			ModeZen:         zen,
			ModeMultiplayer: multi,
		},
		Difficulties: map[Difficulty]DifficultyConfig{
			DifficultyEasy:   {Pairs: 10, PerPairBase: 50, TimeMultiplier: 1.5, ScoreMultiplier: 1.0},
			DifficultyMedium: {Pairs: 20, PerPairBase: 75, TimeMultiplier: 1.0, ScoreMultiplier: 1.5},
			DifficultyHard:   {Pairs: 30, PerPairBase: 100, TimeMultiplier: 0.8, ScoreMultiplier: 2.0},
		},
	}
}
