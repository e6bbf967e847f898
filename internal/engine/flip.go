package engine

import (
	"slices"
	"time"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/roster"
	"github.com/vovakirdan/memory-match/internal/scoring"
)

// FlipCard reveals a card. Illegal flips (unknown id, already flipped,
// already matched, two cards pending, time up in timer mode) are silent
// no-ops; the game favors resilience over strictness at this boundary.
func (g *Game) FlipCard(cardID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.loading || g.complete {
		return
	}
	if g.settings.Mode == config.ModeTimer && g.timeUp {
		return
	}
	if len(g.flipped) >= 2 {
		return
	}
	if slices.Contains(g.flipped, cardID) {
		return
	}

	idx := g.cardIndexLocked(cardID)
	if idx < 0 {
		g.debugf("engine: flip ignored, unknown card %q", cardID)
		return
	}
	if g.cards[idx].IsMatched {
		return
	}
	if g.settings.Mode == config.ModeMultiplayer && g.activePlayerLocked() < 0 {
		return
	}

	fresh := g.machine.Current() == PhaseIdle
	if fresh {
		g.fire(eventBegin)
		g.playing = true
		g.notifier.GameStart()
		g.startGameTickerLocked()
		g.schedulePlayerTimerLocked()
	} else if !g.playing {
		// Resuming from pause.
		g.playing = true
		g.startGameTickerLocked()
	}

	g.cards[idx].IsFlipped = true
	g.flipped = append(g.flipped, cardID)
	if !fresh {
		g.notifier.CardFlip()
	}

	switch len(g.flipped) {
	case 1:
		if g.machine.Current() == PhaseAwaitingFirst {
			g.fire(eventFlipOne)
		}
	case 2:
		g.fire(eventFlipTwo)
		g.resolveLocked()
	}
}

// resolveLocked decides the pending two-card attempt and schedules the
// delayed outcome. Caller holds the lock; phase is resolving.
func (g *Game) resolveLocked() {
	first, second := g.flipped[0], g.flipped[1]
	firstIdx := g.cardIndexLocked(first)
	secondIdx := g.cardIndexLocked(second)
	if firstIdx < 0 || secondIdx < 0 {
		return
	}

	session := g.session
	if g.cards[firstIdx].PairID() == g.cards[secondIdx].PairID() {
		// Keep both cards up while the match shows; the commit (including
		// the move count) lands after the delay.
		g.showingMatch = true
		g.notifier.Match()
		g.pending = g.clk.After(MatchDelay, func() {
			g.commitMatch(session, first, second)
		})
		return
	}

	// Mismatch: the move and the broken streak register immediately, only
	// the flip-back is delayed.
	g.moves++
	g.streak = 0
	g.notifier.Mismatch()

	if g.settings.Mode == config.ModeMultiplayer {
		if i := g.activePlayerLocked(); i >= 0 {
			g.players[i].Moves++
		}
		g.advancePlayerLocked()
		g.restartPlayerTimerLocked()
	}

	g.pending = g.clk.After(MismatchDelay, func() {
		g.revertMismatch(session, first, second)
	})
}

// commitMatch applies a successful match after the showing-match delay.
// A stale session or phase means the board changed under the callback; the
// commit is then dropped.
func (g *Game) commitMatch(session uint64, first, second string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if session != g.session || g.machine.Current() != PhaseResolving {
		return
	}
	g.pending = nil

	// Both cards of the pair become matched atomically.
	for i := range g.cards {
		if g.cards[i].ID == first || g.cards[i].ID == second {
			g.cards[i].IsMatched = true
		}
	}
	g.flipped = nil
	g.showingMatch = false

	g.matchedPairs++
	g.moves++
	g.streak++
	if g.streak > g.maxStreak {
		g.maxStreak = g.streak
	}

	if g.settings.Mode == config.ModeMultiplayer {
		if i := g.activePlayerLocked(); i >= 0 {
			g.players[i].MatchedPairs++
			g.players[i].Moves++
		}
		// A match lets the same player continue; their turn clock stops.
		g.stopPlayerTimerLocked()
	}

	complete := g.matchedPairs == g.totalPairsLocked()
	expired := g.settings.Mode == config.ModeTimer && scoring.IsTimeUp(g.timeRemaining)

	if complete && g.settings.Mode == config.ModeMultiplayer {
		g.markWinnersLocked()
	}

	g.playing = !complete && !expired

	switch {
	case complete:
		g.fire(eventFinish)
		g.complete = true
		g.stopGameTickerLocked()
		g.stopPlayerTimerLocked()
		g.notifier.GameComplete()
		g.recordCompletionLocked()
	case expired:
		g.fire(eventResolved)
		g.fire(eventExpire)
		g.timeUp = true
		g.stopGameTickerLocked()
	default:
		g.fire(eventResolved)
	}

	g.checkAchievementsLocked()
}

// revertMismatch flips both cards back after the mismatch delay. Stale
// sessions and already-cleared boards (turn timeout won the race) are
// no-ops.
func (g *Game) revertMismatch(session uint64, first, second string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if session != g.session || g.machine.Current() != PhaseResolving {
		return
	}
	g.pending = nil

	for i := range g.cards {
		if (g.cards[i].ID == first || g.cards[i].ID == second) && !g.cards[i].IsMatched {
			g.cards[i].IsFlipped = false
		}
	}
	g.flipped = nil
	g.fire(eventResolved)
}

// markWinnersLocked sets IsWinner on the player(s) with the most pairs.
// A tie leaves no unique winner but still flags the tied leaders.
func (g *Game) markWinnersLocked() {
	best := -1
	for _, p := range g.players {
		if p.MatchedPairs > best {
			best = p.MatchedPairs
		}
	}
	for i := range g.players {
		g.players[i].IsWinner = g.players[i].MatchedPairs == best
	}
}

// Winner returns the unique winner, or nil while the game is running or on
// a tie.
func (g *Game) Winner() *roster.Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.settings.Mode != config.ModeMultiplayer || len(g.players) == 0 {
		return nil
	}
	best := -1
	count := 0
	var winner roster.Player
	for _, p := range g.players {
		switch {
		case p.MatchedPairs > best:
			best = p.MatchedPairs
			count = 1
			winner = p
		case p.MatchedPairs == best:
			count++
		}
	}
	if count != 1 {
		return nil
	}
	winner.IsWinner = true
	return &winner
}

// CurrentPlayer returns a copy of the active player, or nil outside
// multiplayer.
func (g *Game) CurrentPlayer() *roster.Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.settings.Mode != config.ModeMultiplayer {
		return nil
	}
	if i := g.activePlayerLocked(); i >= 0 {
		p := g.players[i]
		return &p
	}
	return nil
}

// IsMultiplayerTurnComplete reports whether the active player has used both
// flips of their turn.
func (g *Game) IsMultiplayerTurnComplete() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings.Mode == config.ModeMultiplayer && len(g.flipped) == 2
}

// CanStartGame is true outside multiplayer; multiplayer additionally needs
// a validated roster.
func (g *Game) CanStartGame() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.settings.Mode != config.ModeMultiplayer {
		return true
	}
	return g.settings.NamesValid
}

func (g *Game) cardIndexLocked(cardID string) int {
	for i := range g.cards {
		if g.cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

func (g *Game) activePlayerLocked() int {
	for i := range g.players {
		if g.players[i].IsActive {
			return i
		}
	}
	return -1
}

// advancePlayerLocked moves the active flag round-robin.
func (g *Game) advancePlayerLocked() {
	if len(g.players) == 0 {
		return
	}
	next := (g.settings.CurrentPlayer + 1) % len(g.players)
	g.settings.CurrentPlayer = next
	for i := range g.players {
		g.players[i].IsActive = i == next
	}
}

func (g *Game) recordCompletionLocked() {
	if g.stats == nil {
		return
	}
	won := true
	if g.settings.Mode == config.ModeMultiplayer {
		won = g.uniqueWinnerLocked()
	}
	if err := g.stats.RecordCompletion(g.settings.Mode, won); err != nil {
		g.debugf("engine: could not record completion: %v", err)
	}
}

func (g *Game) uniqueWinnerLocked() bool {
	best, count := -1, 0
	for _, p := range g.players {
		switch {
		case p.MatchedPairs > best:
			best = p.MatchedPairs
			count = 1
		case p.MatchedPairs == best:
			count++
		}
	}
	return count == 1
}

func (g *Game) checkAchievementsLocked() {
	snap := achievements.Snapshot{
		MatchedPairs:   g.matchedPairs,
		Streak:         g.streak,
		Moves:          g.moves,
		TimeSeconds:    g.timeSeconds,
		IsGameComplete: g.complete,
		TotalPairs:     g.totalPairsLocked(),
	}
	if g.stats != nil {
		snap.ZenCompletions = g.stats.Completions(config.ModeZen)
		snap.TimerCompletions = g.stats.Completions(config.ModeTimer)
		snap.MultiplayerWins = g.stats.Wins(config.ModeMultiplayer)
	}
	g.achievementSet = achievements.Check(snap, g.achievementSet, time.Now())
	if err := achievements.Save(g.kv, g.achievementSet); err != nil {
		g.debugf("engine: could not persist achievements: %v", err)
	}
}
