// Package achievements tracks one-way unlocks evaluated against game state
// snapshots and persisted through a string key-value port.
package achievements

import (
	"encoding/json"
	"time"
)

// StorageKey is the KV key the full achievement set is persisted under.
const StorageKey = "memory-match/achievements"

// Achievement is one unlockable entry. Unlock is irreversible.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	UnlockedAt  int64  `json:"unlockedAt,omitempty"` // unix millis
}

// KV is the persistence port. Implementations must not panic; a failed read
// is reported as ok=false and treated as "no data".
type KV interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
}

// Catalog returns the static achievement definitions, all locked.
func Catalog() []Achievement {
	return []Achievement{
		{ID: "first_match", Name: "First Pair", Description: "Find your first pair", Icon: "🎯"},
		{ID: "streak_5", Name: "Streak of 5", Description: "Match 5 pairs in a row", Icon: "🔥"},
		{ID: "streak_10", Name: "Streak of 10", Description: "Match 10 pairs in a row", Icon: "⚡"},
		{ID: "speed_demon", Name: "Speed Demon", Description: "Finish a game in under 2 minutes", Icon: "💨"},
		{ID: "perfectionist", Name: "Perfectionist", Description: "Finish a game without a single miss", Icon: "✨"},
		{ID: "zen_master", Name: "Zen Master", Description: "Finish 10 games in Zen mode", Icon: "🧘"},
		{ID: "multiplayer_winner", Name: "Multiplayer Champion", Description: "Win 5 multiplayer matches", Icon: "👑"},
		{ID: "timer_master", Name: "Master of Time", Description: "Finish 5 games in Timer mode", Icon: "⏰"},
	}
}

// Load merges persisted unlock state into the catalog. New catalog entries
// absent from storage come back locked; storage rows for removed ids are
// dropped. Any storage or decode failure yields the plain catalog.
func Load(kv KV) []Achievement {
	catalog := Catalog()
	raw, ok := kv.Get(StorageKey)
	if !ok || raw == "" {
		return catalog
	}

	var saved []Achievement
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return catalog
	}

	byID := make(map[string]Achievement, len(saved))
	for _, a := range saved {
		byID[a.ID] = a
	}
	for i := range catalog {
		if s, found := byID[catalog[i].ID]; found && s.Unlocked {
			catalog[i].Unlocked = true
			catalog[i].UnlockedAt = s.UnlockedAt
		}
	}
	return catalog
}

// Save persists the full set. Errors are returned for the caller to log;
// they never affect game state.
func Save(kv KV, set []Achievement) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return kv.Set(StorageKey, string(data))
}

// Snapshot is the slice of game state the evaluator reads.
type Snapshot struct {
	MatchedPairs   int
	Streak         int
	Moves          int
	TimeSeconds    int
	IsGameComplete bool
	TotalPairs     int

	// Lifetime counters, maintained by the caller's stats store.
	ZenCompletions   int
	TimerCompletions int
	MultiplayerWins  int
}

// Check evaluates every rule against the snapshot and unlocks anything
// newly earned, stamping now. Already-unlocked entries are untouched, so
// repeated calls are idempotent. The returned slice is a copy.
func Check(snap Snapshot, set []Achievement, now time.Time) []Achievement {
	out := make([]Achievement, len(set))
	copy(out, set)

	earned := map[string]bool{
		"first_match":        snap.MatchedPairs >= 1,
		"streak_5":           snap.Streak >= 5,
		"streak_10":          snap.Streak >= 10,
		"speed_demon":        snap.IsGameComplete && snap.TimeSeconds < 120,
		"perfectionist":      snap.IsGameComplete && snap.TotalPairs > 0 && snap.Moves == 2*snap.TotalPairs,
		"zen_master":         snap.ZenCompletions >= 10,
		"timer_master":       snap.TimerCompletions >= 5,
		"multiplayer_winner": snap.MultiplayerWins >= 5,
	}

	stamp := now.UnixMilli()
	for i := range out {
		if !out[i].Unlocked && earned[out[i].ID] {
			out[i].Unlocked = true
			out[i].UnlockedAt = stamp
		}
	}
	return out
}

// UnlockedIDs lists the ids of unlocked achievements, in catalog order.
func UnlockedIDs(set []Achievement) []string {
	var ids []string
	for _, a := range set {
		if a.Unlocked {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
