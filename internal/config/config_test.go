package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTablesComplete(t *testing.T) {
	tables := DefaultTables()

	for _, mode := range Modes() {
		if _, ok := tables.Modes[mode]; !ok {
			t.Errorf("default tables missing mode %s", mode)
		}
	}
	for _, d := range Difficulties() {
		row, ok := tables.Difficulties[d]
		if !ok {
			t.Errorf("default tables missing difficulty %s", d)
			continue
		}
		if row.Pairs <= 0 || row.PerPairBase <= 0 {
			t.Errorf("difficulty %s has empty scaling row: %+v", d, row)
		}
	}
}

func TestResolveTimerScaling(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name      string
		mode      Mode
		diff      Difficulty
		userTimer int
		want      int
	}{
		{"timer easy default", ModeTimer, DifficultyEasy, 0, 90},     // 60 * 1.5
		{"timer hard default", ModeTimer, DifficultyHard, 0, 48},     // 60 * 0.8
		{"timer easy custom", ModeTimer, DifficultyEasy, 120, 180},   // 120 * 1.5
		{"timer medium custom", ModeTimer, DifficultyMedium, 120, 120},
		{"classic ignores user timer", ModeClassic, DifficultyEasy, 120, 0},
		{"zen has no timer", ModeZen, DifficultyHard, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tables.Resolve(tt.mode, tt.diff, tt.userTimer)
			if cfg.TimerDuration != tt.want {
				t.Errorf("Resolve(%s, %s, %d).TimerDuration = %d, want %d",
					tt.mode, tt.diff, tt.userTimer, cfg.TimerDuration, tt.want)
			}
		})
	}
}

func TestResolveUnknownModeFallsBackToClassic(t *testing.T) {
	tables := DefaultTables()
	cfg := tables.Resolve(Mode("mystery"), DifficultyEasy, 0)
	if cfg.IsMultiplayer || cfg.HasTimer {
		t.Errorf("unknown mode did not fall back to classic: %+v", cfg)
	}
}

func TestDifficultyFallsBackToEasy(t *testing.T) {
	tables := DefaultTables()
	row := tables.Difficulty(Difficulty("nightmare"))
	if row.Pairs != tables.Difficulties[DifficultyEasy].Pairs {
		t.Errorf("unknown difficulty row = %+v, want the easy row", row)
	}
}

func TestParse(t *testing.T) {
	if _, err := ParseMode("multiplayer"); err != nil {
		t.Errorf("ParseMode(multiplayer) failed: %v", err)
	}
	if _, err := ParseMode("speedrun"); err == nil {
		t.Error("ParseMode(speedrun) did not fail")
	}
	if _, err := ParseDifficulty("hard"); err != nil {
		t.Errorf("ParseDifficulty(hard) failed: %v", err)
	}
	if _, err := ParseDifficulty("extreme"); err == nil {
		t.Error("ParseDifficulty(extreme) did not fail")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modes.yaml")
	custom := `
modes:
  classic:
    min_players: 1
    max_players: 1
    scoring_enabled: true
    initial_message: "custom greeting"
difficulties:
  easy:
    pairs: 4
    per_pair_base: 10
    time_multiplier: 1.0
    score_multiplier: 1.0
`
	if err := os.WriteFile(path, []byte(custom), 0o600); err != nil {
		t.Fatal(err)
	}

	tables, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := tables.Messages(ModeClassic).Initial; got != "custom greeting" {
		t.Errorf("custom message = %q", got)
	}
	if got := tables.Difficulty(DifficultyEasy).Pairs; got != 4 {
		t.Errorf("custom pairs = %d, want 4", got)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() with a missing custom path did not fail")
	}
}

func TestEmbeddedDefaultsMatchModes(t *testing.T) {
	tables, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	mp := tables.Resolve(ModeMultiplayer, DifficultyEasy, 0)
	if !mp.IsMultiplayer || mp.MinPlayers != 2 || mp.MaxPlayers != 4 {
		t.Errorf("multiplayer rules = %+v", mp)
	}
	if mp.PlayerTurnSeconds != 10 {
		t.Errorf("player turn window = %d, want 10", mp.PlayerTurnSeconds)
	}

	zen := tables.Resolve(ModeZen, DifficultyEasy, 0)
	if zen.ScoringEnabled {
		t.Error("zen resolved with scoring enabled")
	}
}
