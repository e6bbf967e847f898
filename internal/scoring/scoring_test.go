package scoring

import (
	"testing"

	"github.com/vovakirdan/memory-match/internal/config"
)

func TestCalculatePinnedValues(t *testing.T) {
	easy := config.DifficultyConfig{Pairs: 10, PerPairBase: 50, ScoreMultiplier: 1.0}
	medium := config.DifficultyConfig{Pairs: 20, PerPairBase: 75, ScoreMultiplier: 1.5}

	tests := []struct {
		name      string
		moves     int
		seconds   int
		diff      config.DifficultyConfig
		maxStreak int
		mode      config.Mode
		want      Breakdown
	}{
		{
			name: "easy classic with streak", moves: 10, seconds: 100,
			diff: easy, maxStreak: 10, mode: config.ModeClassic,
			want: Breakdown{
				BaseScore: 500, TimeBonus: 800, MovesBonus: 450,
				DifficultyMultiplier: 1.0, StreakMultiplier: 2.0,
				GameModeMultiplier: 1.0, FinalScore: 3500,
			},
		},
		{
			name: "medium timer", moves: 40, seconds: 200,
			diff: medium, maxStreak: 0, mode: config.ModeTimer,
			want: Breakdown{
				BaseScore: 1500, TimeBonus: 600, MovesBonus: 300,
				DifficultyMultiplier: 1.5, StreakMultiplier: 1.0,
				GameModeMultiplier: 1.5, FinalScore: 5400,
			},
		},
		{
			name: "bonuses clamp at zero", moves: 120, seconds: 600,
			diff: easy, maxStreak: 0, mode: config.ModeClassic,
			want: Breakdown{
				BaseScore: 500, TimeBonus: 0, MovesBonus: 0,
				DifficultyMultiplier: 1.0, StreakMultiplier: 1.0,
				GameModeMultiplier: 1.0, FinalScore: 500,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.moves, tt.seconds, tt.diff, tt.maxStreak, tt.mode)
			if got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateUnknownModeFallsBack(t *testing.T) {
	easy := config.DifficultyConfig{Pairs: 10, PerPairBase: 50, ScoreMultiplier: 1.0}
	got := Calculate(10, 100, easy, 0, config.Mode("mystery"))
	if got.GameModeMultiplier != 1.0 {
		t.Errorf("unknown mode multiplier = %v, want 1.0", got.GameModeMultiplier)
	}
}

func TestZenPaysLess(t *testing.T) {
	easy := config.DifficultyConfig{Pairs: 10, PerPairBase: 50, ScoreMultiplier: 1.0}
	classic := Calculate(20, 120, easy, 3, config.ModeClassic)
	zen := Calculate(20, 120, easy, 3, config.ModeZen)
	if zen.FinalScore >= classic.FinalScore {
		t.Errorf("zen score %d not below classic %d", zen.FinalScore, classic.FinalScore)
	}
}

func TestTimeRemaining(t *testing.T) {
	if got := TimeRemaining(60, 20); got != 40 {
		t.Errorf("TimeRemaining(60, 20) = %d, want 40", got)
	}
	if got := TimeRemaining(60, 90); got != 0 {
		t.Errorf("TimeRemaining(60, 90) = %d, want 0", got)
	}
	if IsTimeUp(1) {
		t.Error("IsTimeUp(1) = true")
	}
	if !IsTimeUp(0) {
		t.Error("IsTimeUp(0) = false")
	}
}
