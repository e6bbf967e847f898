package engine

import (
	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/deck"
	"github.com/vovakirdan/memory-match/internal/roster"
)

// resetLocked deals a fresh board for the current settings. Bumping the
// session neutralizes every outstanding callback before the new deal.
// With playing set the game starts live immediately; otherwise it waits
// in idle for the first flip.
func (g *Game) resetLocked(playing bool) {
	g.session++
	g.stopHandlesLocked()
	g.fire(eventReset)

	g.cards = deck.Generate(g.settings.Theme, g.totalPairsLocked(), g.rng)
	g.flipped = nil
	g.matchedPairs = 0
	g.moves = 0
	g.timeSeconds = 0
	g.streak = 0
	g.maxStreak = 0
	g.complete = false
	g.timeUp = false
	g.loading = false
	g.showingMatch = false

	cfg := g.tables.Resolve(g.settings.Mode, g.settings.Difficulty, g.settings.TimerDuration)
	if g.settings.Mode == config.ModeTimer {
		g.timerLimit = cfg.TimerDuration
		g.timeRemaining = g.timerLimit
	} else {
		g.timerLimit = 0
		g.timeRemaining = 0
	}

	g.playerTimeRemaining = 0
	g.playerTimerActive = false
	g.settings.CurrentPlayer = 0
	if g.settings.Mode == config.ModeMultiplayer {
		g.players = roster.NewPlayers(g.settings.PlayerNames)
	} else {
		g.players = nil
	}

	g.playing = playing
	if playing {
		g.fire(eventBegin)
		g.notifier.GameStart()
		g.startGameTickerLocked()
		g.schedulePlayerTimerLocked()
	}
}

// ResetGame abandons the current game and deals a new idle board with the
// same settings.
func (g *Game) ResetGame() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked(false)
}

// StartGame deals a fresh board and starts play immediately. In
// multiplayer it refuses to start until the roster validates.
func (g *Game) StartGame() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.settings.Mode == config.ModeMultiplayer && !g.settings.NamesValid {
		g.debugf("engine: start refused, player names not validated")
		return
	}
	g.resetLocked(true)
}

// PauseGame suspends the clock. The board stays as is; the next flip
// resumes play. Pausing a game that is not live is a no-op.
func (g *Game) PauseGame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.playing || g.complete {
		return
	}
	if !g.tables.Resolve(g.settings.Mode, g.settings.Difficulty, g.settings.TimerDuration).CanPause {
		return
	}
	g.playing = false
	g.stopGameTickerLocked()
	g.stopPlayerTimerLocked()
}

// SetDifficulty switches the board size and redeals after a short settle.
func (g *Game) SetDifficulty(d config.Difficulty) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if d == g.settings.Difficulty {
		return
	}
	g.settings.Difficulty = d
	g.persistSettingsLocked()
	g.settleAndRedealLocked()
}

// SetTheme switches the card face set and redeals after a short settle.
func (g *Game) SetTheme(theme string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if theme == g.settings.Theme {
		return
	}
	g.settings.Theme = theme
	g.persistSettingsLocked()
	g.settleAndRedealLocked()
}

// SetGameMode switches the rule set and redeals. Entering multiplayer with
// no roster seeds placeholder names; they still need SetPlayerNames before
// the game may start.
func (g *Game) SetGameMode(mode config.Mode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if mode == g.settings.Mode {
		return
	}
	g.settings.Mode = mode
	if mode == config.ModeMultiplayer && len(g.settings.PlayerNames) == 0 {
		g.settings.PlayerNames = roster.DefaultNames(roster.MinPlayers)
		g.settings.NamesValid = false
	}
	g.persistSettingsLocked()
	g.settleAndRedealLocked()
}

// SetTimerDuration records the user's countdown choice. Only the timer
// mode redeals; other modes just keep the value for later.
func (g *Game) SetTimerDuration(seconds int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seconds <= 0 || seconds == g.settings.TimerDuration {
		return
	}
	g.settings.TimerDuration = seconds
	g.persistSettingsLocked()
	if g.settings.Mode == config.ModeTimer {
		g.settleAndRedealLocked()
	}
}

// SetPlayerNames validates and installs the multiplayer roster. An invalid
// set leaves the previous roster in place; the verdict is returned either
// way so the caller can show the errors.
func (g *Game) SetPlayerNames(names []string) roster.Validation {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := roster.ValidateNames(names)
	if !v.IsValid {
		g.settings.NamesValid = false
		return v
	}

	g.settings.PlayerNames = v.ValidNames
	g.settings.NamesValid = true
	g.persistSettingsLocked()
	if g.settings.Mode == config.ModeMultiplayer && !g.playing {
		g.settings.CurrentPlayer = 0
		g.players = roster.NewPlayers(v.ValidNames)
	}
	return v
}

// settleAndRedealLocked holds the board in a loading state briefly and then
// deals fresh. A session change during the settle (another settings change,
// a reset) drops the stale redeal.
func (g *Game) settleAndRedealLocked() {
	g.session++
	g.stopHandlesLocked()
	g.fire(eventReset)
	g.playing = false
	g.loading = true

	session := g.session
	g.settle = g.clk.After(SettleDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if session != g.session {
			return
		}
		g.settle = nil
		g.resetLocked(false)
	})
}
