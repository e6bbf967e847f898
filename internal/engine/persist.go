package engine

import (
	"encoding/json"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/config"
)

// settingsKey is the KV key the settings slice is persisted under.
const settingsKey = "memory-match/settings"

// savedSettings is the persisted slice of Settings. Transient fields
// (current player, validity flag) are derived fresh each session.
type savedSettings struct {
	Difficulty    config.Difficulty `json:"difficulty"`
	Theme         string            `json:"theme"`
	Mode          config.Mode       `json:"mode"`
	TimerDuration int               `json:"timerDuration,omitempty"`
	PlayerNames   []string          `json:"playerNames,omitempty"`
}

// persistSettingsLocked writes the settings slice through the KV port when
// the active mode autosaves. Failures are logged and otherwise ignored.
func (g *Game) persistSettingsLocked() {
	if !g.tables.Resolve(g.settings.Mode, g.settings.Difficulty, g.settings.TimerDuration).AutoSave {
		return
	}
	data, err := json.Marshal(savedSettings{
		Difficulty:    g.settings.Difficulty,
		Theme:         g.settings.Theme,
		Mode:          g.settings.Mode,
		TimerDuration: g.settings.TimerDuration,
		PlayerNames:   g.settings.PlayerNames,
	})
	if err != nil {
		g.debugf("engine: could not encode settings: %v", err)
		return
	}
	if err := g.kv.Set(settingsKey, string(data)); err != nil {
		g.debugf("engine: could not persist settings: %v", err)
	}
}

// LoadSettings reads the persisted settings slice back from a KV store.
// Missing or corrupt data reads as not found.
func LoadSettings(kv achievements.KV) (Settings, bool) {
	raw, ok := kv.Get(settingsKey)
	if !ok || raw == "" {
		return Settings{}, false
	}
	var saved savedSettings
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return Settings{}, false
	}
	return Settings{
		Difficulty:    saved.Difficulty,
		Theme:         saved.Theme,
		Mode:          saved.Mode,
		TimerDuration: saved.TimerDuration,
		PlayerNames:   saved.PlayerNames,
	}, true
}
