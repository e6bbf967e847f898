// Package config provides YAML-based game configuration loading: the
// per-mode rule tables and per-difficulty scaling used across the game.
package config

import "fmt"

// Mode identifies one of the four game modes.
type Mode string

const (
	ModeClassic     Mode = "classic"
	ModeTimer       Mode = "timer"
	ModeZen         Mode = "zen"
	ModeMultiplayer Mode = "multiplayer"
)

// Modes lists all playable modes in display order.
func Modes() []Mode {
	return []Mode{ModeClassic, ModeTimer, ModeZen, ModeMultiplayer}
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeClassic, ModeTimer, ModeZen, ModeMultiplayer:
		return Mode(s), nil
	}
	return "", fmt.Errorf("config: unknown game mode %q", s)
}

// Difficulty identifies a board size preset.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all presets in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// ModeConfig is the full resolved rule set for one game mode.
// Values returned by Resolve are copies.
type ModeConfig struct {
	// Timer
	HasTimer               bool `yaml:"has_timer"`
	TimerDuration          int  `yaml:"timer_duration"` // seconds; 0 = no limit
	TimerStartsOnFirstMove bool `yaml:"timer_starts_on_first_move"`

	// Multiplayer
	IsMultiplayer          bool `yaml:"is_multiplayer"`
	MinPlayers             int  `yaml:"min_players"`
	MaxPlayers             int  `yaml:"max_players"`
	TurnBased              bool `yaml:"turn_based"`
	PlayersContinueOnMatch bool `yaml:"players_continue_on_match"`
	PlayerTurnSeconds      int  `yaml:"player_turn_seconds"` // per-player countdown window

	// Interface
	ShowStreak           bool `yaml:"show_streak"`
	ShowTimeRemaining    bool `yaml:"show_time_remaining"`
	ShowPlayerTurn       bool `yaml:"show_player_turn"`
	ShowMultiplayerScore bool `yaml:"show_multiplayer_score"`
	ShowEfficiency       bool `yaml:"show_efficiency"`

	// Gameplay
	CanPause bool `yaml:"can_pause"`
	AutoSave bool `yaml:"auto_save"`

	// Scoring
	ScoringEnabled      bool `yaml:"scoring_enabled"`
	AchievementsEnabled bool `yaml:"achievements_enabled"`
	LeaderboardEnabled  bool `yaml:"leaderboard_enabled"`

	// Messages
	InitialMessage      string `yaml:"initial_message"`
	GameCompleteMessage string `yaml:"game_complete_message"`
	TimeUpMessage       string `yaml:"time_up_message"`
	WinMessage          string `yaml:"win_message"`
}

// DifficultyConfig is the per-difficulty scaling table. The pair count here
// is the single canonical table: deck generation, scoring and the
// perfect-game check all read it.
type DifficultyConfig struct {
	Pairs           int     `yaml:"pairs"`
	PerPairBase     int     `yaml:"per_pair_base"`
	TimeMultiplier  float64 `yaml:"time_multiplier"`
	ScoreMultiplier float64 `yaml:"score_multiplier"`
}

// Tables bundles everything loaded from YAML.
type Tables struct {
	Modes        map[Mode]ModeConfig             `yaml:"modes"`
	Difficulties map[Difficulty]DifficultyConfig `yaml:"difficulties"`
}

// InterfaceConfig is the narrowed view handed to rendering code.
type InterfaceConfig struct {
	ShowStreak           bool
	ShowTimeRemaining    bool
	ShowPlayerTurn       bool
	ShowMultiplayerScore bool
	ShowEfficiency       bool
}

// GameplayConfig is the narrowed view the engine consumes.
type GameplayConfig struct {
	HasTimer               bool
	TimerDuration          int
	TimerStartsOnFirstMove bool
	IsMultiplayer          bool
	MinPlayers             int
	MaxPlayers             int
	TurnBased              bool
	PlayersContinueOnMatch bool
	PlayerTurnSeconds      int
	CanPause               bool
	AutoSave               bool
}

// MessageConfig is the narrowed view for user-facing status text.
type MessageConfig struct {
	Initial      string
	GameComplete string
	TimeUp       string
	Win          string
}

// Resolve returns the fully resolved mode config: the mode's base table,
// with the caller's timer duration applied first (only for timed modes) and
// the difficulty time multiplier applied after, floored to whole seconds.
// Unknown modes fall back to classic.
func (t Tables) Resolve(mode Mode, difficulty Difficulty, userTimerSeconds int) ModeConfig {
	cfg, ok := t.Modes[mode]
	if !ok {
		cfg = t.Modes[ModeClassic]
	}
	if userTimerSeconds > 0 && cfg.HasTimer {
		cfg.TimerDuration = userTimerSeconds
	}
	if cfg.TimerDuration > 0 {
		d := t.Difficulty(difficulty)
		cfg.TimerDuration = int(float64(cfg.TimerDuration) * d.TimeMultiplier)
	}
	return cfg
}

// Difficulty returns the scaling row for a difficulty, defaulting to easy
// for unknown values.
func (t Tables) Difficulty(d Difficulty) DifficultyConfig {
	if cfg, ok := t.Difficulties[d]; ok {
		return cfg
	}
	return t.Difficulties[DifficultyEasy]
}

// Interface returns the UI-facing subset of the resolved config.
func (t Tables) Interface(mode Mode, difficulty Difficulty) InterfaceConfig {
	cfg := t.Resolve(mode, difficulty, 0)
	return InterfaceConfig{
		ShowStreak:           cfg.ShowStreak,
		ShowTimeRemaining:    cfg.ShowTimeRemaining,
		ShowPlayerTurn:       cfg.ShowPlayerTurn,
		ShowMultiplayerScore: cfg.ShowMultiplayerScore,
		ShowEfficiency:       cfg.ShowEfficiency,
	}
}

// Gameplay returns the engine-facing subset of the resolved config.
func (t Tables) Gameplay(mode Mode, difficulty Difficulty, userTimerSeconds int) GameplayConfig {
	cfg := t.Resolve(mode, difficulty, userTimerSeconds)
	return GameplayConfig{
		HasTimer:               cfg.HasTimer,
		TimerDuration:          cfg.TimerDuration,
		TimerStartsOnFirstMove: cfg.TimerStartsOnFirstMove,
		IsMultiplayer:          cfg.IsMultiplayer,
		MinPlayers:             cfg.MinPlayers,
		MaxPlayers:             cfg.MaxPlayers,
		TurnBased:              cfg.TurnBased,
		PlayersContinueOnMatch: cfg.PlayersContinueOnMatch,
		PlayerTurnSeconds:      cfg.PlayerTurnSeconds,
		CanPause:               cfg.CanPause,
		AutoSave:               cfg.AutoSave,
	}
}

// Messages returns the canned status strings for a mode. No difficulty
// scaling applies to text.
func (t Tables) Messages(mode Mode) MessageConfig {
	cfg, ok := t.Modes[mode]
	if !ok {
		cfg = t.Modes[ModeClassic]
	}
	return MessageConfig{
		Initial:      cfg.InitialMessage,
		GameComplete: cfg.GameCompleteMessage,
		TimeUp:       cfg.TimeUpMessage,
		Win:          cfg.WinMessage,
	}
}
