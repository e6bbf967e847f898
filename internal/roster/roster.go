// Package roster handles the multiplayer player list: name validation,
// default names, and fresh player state.
package roster

import (
	"fmt"
	"strings"
)

// Player is one participant in a multiplayer session.
type Player struct {
	ID           int
	Name         string
	MatchedPairs int
	Moves        int
	IsActive     bool
	IsWinner     bool
}

// Validation is the outcome of checking a proposed name list.
type Validation struct {
	IsValid    bool
	Errors     []string
	ValidNames []string
}

const (
	// MinPlayers and MaxPlayers bound the roster size.
	MinPlayers = 2
	MaxPlayers = 4
)

// DefaultName returns the placeholder name for a player slot (1-based).
func DefaultName(n int) string {
	return fmt.Sprintf("Player %d", n)
}

// DefaultNames generates count placeholder names.
func DefaultNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = DefaultName(i + 1)
	}
	return names
}

// ValidateNames checks a proposed roster. Rules run in order and the first
// failure wins: size bounds, no blank names, case-insensitive uniqueness,
// and at least one name customized away from its positional default.
// Valid names come back trimmed.
func ValidateNames(names []string) Validation {
	fail := func(msg string) Validation {
		return Validation{Errors: []string{msg}}
	}

	if len(names) < MinPlayers {
		return fail("at least 2 players are required for multiplayer")
	}
	if len(names) > MaxPlayers {
		return fail("at most 4 players are allowed")
	}

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fail("every player needs a name")
		}
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if seen[key] {
			return fail("player names must be unique")
		}
		seen[key] = true
	}

	allDefaults := true
	for i, name := range names {
		if strings.TrimSpace(name) != DefaultName(i+1) {
			allDefaults = false
			break
		}
	}
	if allDefaults {
		return fail("customize the player names before starting")
	}

	trimmed := make([]string, len(names))
	for i, name := range names {
		trimmed[i] = strings.TrimSpace(name)
	}
	return Validation{IsValid: true, ValidNames: trimmed}
}

// NewPlayers builds a fresh roster with zeroed stats; only the first
// player starts active.
func NewPlayers(names []string) []Player {
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{
			ID:       i,
			Name:     name,
			IsActive: i == 0,
		}
	}
	return players
}
