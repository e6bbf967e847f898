package engine

import (
	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/scoring"
)

// UpdateTime advances the global clock by one second. It only counts while
// a single-player game is live; multiplayer runs on per-player turn clocks
// instead. In the timer mode, reaching zero ends the game.
func (g *Game) UpdateTime() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updateTimeLocked()
}

func (g *Game) updateTimeLocked() {
	if !g.playing || g.complete {
		return
	}
	if g.settings.Mode == config.ModeMultiplayer {
		return
	}

	g.timeSeconds++

	if g.settings.Mode == config.ModeTimer && g.timerLimit > 0 {
		g.timeRemaining = scoring.TimeRemaining(g.timerLimit, g.timeSeconds)
		if scoring.IsTimeUp(g.timeRemaining) {
			g.playing = false
			g.timeUp = true
			g.fire(eventExpire)
			g.stopGameTickerLocked()
			if g.pending != nil {
				g.pending.Stop()
				g.pending = nil
			}
		}
	}
}

// startGameTickerLocked arms the repeating 1s tick. Multiplayer games do
// not use the global clock. Arming is idempotent.
func (g *Game) startGameTickerLocked() {
	if g.settings.Mode == config.ModeMultiplayer {
		return
	}
	if g.gameTicker != nil {
		return
	}
	g.gameTicker = g.clk.Every(TickPeriod, g.UpdateTime)
}

func (g *Game) stopGameTickerLocked() {
	if g.gameTicker != nil {
		g.gameTicker.Stop()
		g.gameTicker = nil
	}
}

// StartPlayerTimer arms the active player's turn countdown. Only meaningful
// in multiplayer; starting while a countdown runs is a no-op, and any
// orphaned ticker is cleared before a new one starts.
func (g *Game) StartPlayerTimer() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startPlayerTimerLocked()
}

func (g *Game) startPlayerTimerLocked() {
	if g.settings.Mode != config.ModeMultiplayer || len(g.players) == 0 {
		return
	}
	if g.playerTimerActive {
		return
	}
	if g.playerTicker != nil {
		g.playerTicker.Stop()
	}
	g.playerTimeRemaining = g.turnSecondsLocked()
	g.playerTimerActive = true
	g.playerTicker = g.clk.Every(TickPeriod, g.UpdatePlayerTimer)
}

// UpdatePlayerTimer counts the active player's window down by one second.
// Expiry forcibly ends the turn: pending flips are cleared (even
// mid-decision), the next player becomes active and their window starts.
func (g *Game) UpdatePlayerTimer() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.settings.Mode != config.ModeMultiplayer || !g.playerTimerActive {
		return
	}

	g.playerTimeRemaining--
	if g.playerTimeRemaining > 0 {
		return
	}

	g.stopPlayerTimerLocked()
	g.clearFlipsLocked()
	g.advancePlayerLocked()
	g.startPlayerTimerLocked()
}

// StopPlayerTimer cancels the countdown without advancing the turn.
func (g *Game) StopPlayerTimer() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopPlayerTimerLocked()
}

func (g *Game) stopPlayerTimerLocked() {
	if g.playerTicker != nil {
		g.playerTicker.Stop()
		g.playerTicker = nil
	}
	g.playerTimeRemaining = 0
	g.playerTimerActive = false
}

// restartPlayerTimerLocked hands a fresh window to the (new) active player.
func (g *Game) restartPlayerTimerLocked() {
	g.stopPlayerTimerLocked()
	g.startPlayerTimerLocked()
}

// schedulePlayerTimerLocked arms the countdown shortly after the turn
// begins, guarded against the session changing in the interim.
func (g *Game) schedulePlayerTimerLocked() {
	if g.settings.Mode != config.ModeMultiplayer || len(g.players) == 0 {
		return
	}
	session := g.session
	g.clk.After(playerTimerLag, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if session != g.session {
			return
		}
		g.startPlayerTimerLocked()
	})
}

// turnSecondsLocked resolves the per-turn window from the mode config.
func (g *Game) turnSecondsLocked() int {
	secs := g.tables.Resolve(g.settings.Mode, g.settings.Difficulty, g.settings.TimerDuration).PlayerTurnSeconds
	if secs <= 0 {
		secs = 10
	}
	return secs
}

// NextPlayer advances the turn round-robin, clearing any flipped cards and
// restarting the turn countdown for the new player.
func (g *Game) NextPlayer() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.settings.Mode != config.ModeMultiplayer || len(g.players) == 0 {
		return
	}
	g.clearFlipsLocked()
	g.advancePlayerLocked()
	g.restartPlayerTimerLocked()
}

// clearFlipsLocked cancels the pending attempt, if any, and puts every
// unmatched card face down.
func (g *Game) clearFlipsLocked() {
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	for i := range g.cards {
		if !g.cards[i].IsMatched {
			g.cards[i].IsFlipped = false
		}
	}
	g.flipped = nil
	g.showingMatch = false

	switch g.machine.Current() {
	case PhaseAwaitingSecond:
		g.fire(eventClearOne)
	case PhaseResolving:
		g.fire(eventResolved)
	}
}
