// Package scoring computes the end-of-game score breakdown.
package scoring

import (
	"math"

	"github.com/vovakirdan/memory-match/internal/config"
)

// Breakdown itemizes how a final score was reached.
type Breakdown struct {
	BaseScore            int
	TimeBonus            int
	MovesBonus           int
	DifficultyMultiplier float64
	StreakMultiplier     float64
	GameModeMultiplier   float64
	FinalScore           int
}

// Mode multipliers: timed play pays more, zen pays less, multiplayer gets a
// small bonus for the turn pressure.
var modeMultipliers = map[config.Mode]float64{
	config.ModeClassic:     1.0,
	config.ModeTimer:       1.5,
	config.ModeZen:         0.8,
	config.ModeMultiplayer: 1.2,
}

// Calculate is pure and total: any non-negative inputs yield a breakdown.
// The difficulty row supplies both the pair count and per-pair base, so the
// same table drives the board and the score.
func Calculate(moves, timeSeconds int, diff config.DifficultyConfig, maxStreak int, mode config.Mode) Breakdown {
	base := diff.Pairs * diff.PerPairBase

	timeBonus := 1000 - timeSeconds*2
	if timeBonus < 0 {
		timeBonus = 0
	}
	movesBonus := 500 - moves*5
	if movesBonus < 0 {
		movesBonus = 0
	}

	streakMult := 1 + float64(maxStreak)*0.1

	modeMult, ok := modeMultipliers[mode]
	if !ok {
		modeMult = 1.0
	}

	final := math.Round(float64(base+timeBonus+movesBonus) * diff.ScoreMultiplier * streakMult * modeMult)

	return Breakdown{
		BaseScore:            base,
		TimeBonus:            timeBonus,
		MovesBonus:           movesBonus,
		DifficultyMultiplier: diff.ScoreMultiplier,
		StreakMultiplier:     streakMult,
		GameModeMultiplier:   modeMult,
		FinalScore:           int(final),
	}
}

// TimeRemaining clamps duration minus elapsed at zero.
func TimeRemaining(durationSeconds, elapsedSeconds int) int {
	remaining := durationSeconds - elapsedSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsTimeUp reports whether a timed game has run out.
func IsTimeUp(timeRemaining int) bool {
	return timeRemaining <= 0
}
