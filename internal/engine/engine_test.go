package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/clock"
	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/deck"
)

func newTestGame(t *testing.T, clk clock.Clock, mode config.Mode) *Game {
	t.Helper()
	g := New(Options{
		Clock: clk,
		Seed:  1,
		Mode:  mode,
	})
	t.Cleanup(g.Close)
	return g
}

// findPair returns the ids of two face-down cards of the same pair.
func findPair(snap State) (string, string) {
	byPair := make(map[string]string)
	for _, c := range snap.Cards {
		if c.IsMatched || c.IsFlipped {
			continue
		}
		if other, ok := byPair[c.PairID()]; ok {
			return other, c.ID
		}
		byPair[c.PairID()] = c.ID
	}
	return "", ""
}

// findMismatch returns the ids of two face-down cards of different pairs.
func findMismatch(snap State) (string, string) {
	first := deck.Card{}
	for _, c := range snap.Cards {
		if c.IsMatched || c.IsFlipped {
			continue
		}
		if first.ID == "" {
			first = c
			continue
		}
		if c.PairID() != first.PairID() {
			return first.ID, c.ID
		}
	}
	return "", ""
}

func cardByID(snap State, id string) deck.Card {
	for _, c := range snap.Cards {
		if c.ID == id {
			return c
		}
	}
	return deck.Card{}
}

func TestFreshDeal(t *testing.T) {
	g := newTestGame(t, clock.NewManual(), config.ModeClassic)
	snap := g.Snapshot()

	if len(snap.Cards) != 20 {
		t.Fatalf("easy board has %d cards, want 20", len(snap.Cards))
	}
	if snap.Phase != PhaseIdle || snap.IsPlaying {
		t.Errorf("fresh deal: phase %s, playing %v", snap.Phase, snap.IsPlaying)
	}
	if snap.TotalPairs != 10 {
		t.Errorf("TotalPairs = %d, want 10", snap.TotalPairs)
	}
}

func TestFirstFlipStartsGame(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	a, _ := findPair(g.Snapshot())
	g.FlipCard(a)

	snap := g.Snapshot()
	if !snap.IsPlaying {
		t.Error("game not playing after first flip")
	}
	if snap.Phase != PhaseAwaitingSecond {
		t.Errorf("phase = %s, want %s", snap.Phase, PhaseAwaitingSecond)
	}
	if !cardByID(snap, a).IsFlipped {
		t.Error("flipped card not face up")
	}

	// The clock only starts counting with the game.
	clk.Advance(3 * time.Second)
	if got := g.Snapshot().TimeSeconds; got != 3 {
		t.Errorf("TimeSeconds = %d, want 3", got)
	}
}

func TestMatchCommitsAfterDelay(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	a, b := findPair(g.Snapshot())
	g.FlipCard(a)
	g.FlipCard(b)

	snap := g.Snapshot()
	if snap.Phase != PhaseResolving || !snap.ShowingMatch {
		t.Fatalf("after second flip: phase %s, showingMatch %v", snap.Phase, snap.ShowingMatch)
	}
	if snap.Moves != 0 {
		t.Errorf("move counted before the commit: %d", snap.Moves)
	}

	clk.Advance(MatchDelay)

	snap = g.Snapshot()
	if snap.MatchedPairs != 1 || snap.Moves != 1 || snap.Streak != 1 {
		t.Errorf("after commit: pairs %d, moves %d, streak %d", snap.MatchedPairs, snap.Moves, snap.Streak)
	}
	if !cardByID(snap, a).IsMatched || !cardByID(snap, b).IsMatched {
		t.Error("cards not marked matched")
	}
	if snap.Phase != PhaseAwaitingFirst {
		t.Errorf("phase = %s, want %s", snap.Phase, PhaseAwaitingFirst)
	}
}

func TestMismatchRevertsAfterDelay(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	a, b := findMismatch(g.Snapshot())
	g.FlipCard(a)
	g.FlipCard(b)

	// A mismatch costs the move immediately and breaks the streak.
	snap := g.Snapshot()
	if snap.Moves != 1 || snap.Streak != 0 {
		t.Errorf("after mismatch: moves %d, streak %d", snap.Moves, snap.Streak)
	}
	if !cardByID(snap, a).IsFlipped || !cardByID(snap, b).IsFlipped {
		t.Error("mismatched cards flipped back too early")
	}

	clk.Advance(MismatchDelay)

	snap = g.Snapshot()
	if cardByID(snap, a).IsFlipped || cardByID(snap, b).IsFlipped {
		t.Error("mismatched cards still face up after the delay")
	}
	if snap.MatchedPairs != 0 {
		t.Errorf("MatchedPairs = %d after mismatch", snap.MatchedPairs)
	}
	if snap.Phase != PhaseAwaitingFirst {
		t.Errorf("phase = %s, want %s", snap.Phase, PhaseAwaitingFirst)
	}
}

func TestIllegalFlipsAreNoOps(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	a, b := findMismatch(g.Snapshot())

	// Unknown card
	g.FlipCard("no-such-card")
	if len(g.Snapshot().FlippedCards) != 0 {
		t.Error("unknown card registered as flipped")
	}

	// Same card twice
	g.FlipCard(a)
	g.FlipCard(a)
	if got := len(g.Snapshot().FlippedCards); got != 1 {
		t.Errorf("double flip registered %d cards", got)
	}

	// Third card while two are pending
	g.FlipCard(b)
	c, _ := findMismatch(g.Snapshot())
	g.FlipCard(c)
	if got := len(g.Snapshot().FlippedCards); got != 2 {
		t.Errorf("third flip registered, %d cards up", got)
	}

	// A matched card stays down
	clk.Advance(MismatchDelay)
	ma, mb := findPair(g.Snapshot())
	g.FlipCard(ma)
	g.FlipCard(mb)
	clk.Advance(MatchDelay)
	g.FlipCard(ma)
	if got := len(g.Snapshot().FlippedCards); got != 0 {
		t.Errorf("matched card flipped again, %d cards up", got)
	}
}

func completeGame(t *testing.T, g *Game, clk *clock.Manual) {
	t.Helper()
	for i := 0; i < 100; i++ {
		snap := g.Snapshot()
		if snap.IsGameComplete {
			return
		}
		a, b := findPair(snap)
		if a == "" {
			t.Fatal("no pair left but game not complete")
		}
		g.FlipCard(a)
		g.FlipCard(b)
		clk.Advance(MatchDelay)
	}
	t.Fatal("game did not complete")
}

func TestCompletion(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	completeGame(t, g, clk)

	snap := g.Snapshot()
	if snap.Phase != PhaseComplete || snap.IsPlaying {
		t.Errorf("after completion: phase %s, playing %v", snap.Phase, snap.IsPlaying)
	}
	if snap.MatchedPairs != 10 || snap.Moves != 10 || snap.MaxStreak != 10 {
		t.Errorf("pairs %d, moves %d, maxStreak %d", snap.MatchedPairs, snap.Moves, snap.MaxStreak)
	}

	if g.Score().FinalScore <= 0 {
		t.Error("completed game scored zero")
	}

	// Completion is terminal until a reset.
	a, b := snap.Cards[0].ID, snap.Cards[1].ID
	g.FlipCard(a)
	g.FlipCard(b)
	if got := len(g.Snapshot().FlippedCards); got != 0 {
		t.Errorf("flips accepted after completion: %d", got)
	}

	unlocked := make(map[string]bool)
	for _, ach := range g.Achievements() {
		if ach.Unlocked {
			unlocked[ach.ID] = true
		}
	}
	for _, id := range []string{"first_match", "streak_5", "streak_10", "speed_demon"} {
		if !unlocked[id] {
			t.Errorf("achievement %s not unlocked after a clean fast run", id)
		}
	}
	if unlocked["perfectionist"] {
		t.Error("perfectionist unlocked without the exact move count")
	}
}

func TestTimerModeExpires(t *testing.T) {
	clk := clock.NewManual()
	g := New(Options{
		Clock:         clk,
		Seed:          1,
		Mode:          config.ModeTimer,
		TimerDuration: 40, // 60s after the easy 1.5x multiplier
	})
	defer g.Close()

	snap := g.Snapshot()
	if snap.TimeRemaining != 60 {
		t.Fatalf("TimeRemaining = %d, want 60", snap.TimeRemaining)
	}

	a, _ := findPair(snap)
	g.FlipCard(a)
	clk.Advance(60 * time.Second)

	snap = g.Snapshot()
	if !snap.IsTimeUp || snap.IsPlaying {
		t.Errorf("after expiry: timeUp %v, playing %v", snap.IsTimeUp, snap.IsPlaying)
	}
	if snap.Phase != PhaseTimeUp {
		t.Errorf("phase = %s, want %s", snap.Phase, PhaseTimeUp)
	}
	if snap.TimeRemaining != 0 {
		t.Errorf("TimeRemaining = %d, want 0", snap.TimeRemaining)
	}

	// Flips after time up are ignored.
	_, b := findPair(snap)
	g.FlipCard(b)
	if got := g.Snapshot().FlippedCards; len(got) != 1 {
		t.Errorf("flip accepted after time up: %v", got)
	}
}

func TestPauseStopsClock(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	a, b := findPair(g.Snapshot())
	g.FlipCard(a)
	clk.Advance(2 * time.Second)

	g.PauseGame()
	if g.Snapshot().IsPlaying {
		t.Fatal("still playing after pause")
	}
	clk.Advance(10 * time.Second)
	if got := g.Snapshot().TimeSeconds; got != 2 {
		t.Errorf("clock ran while paused: %d", got)
	}

	// The next flip resumes.
	g.FlipCard(b)
	if !g.Snapshot().IsPlaying {
		t.Error("flip did not resume the game")
	}
	clk.Advance(time.Second)
	if got := g.Snapshot().TimeSeconds; got != 3 {
		t.Errorf("clock did not resume: %d", got)
	}
}

func TestTimerModeCannotPause(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeTimer)

	a, _ := findPair(g.Snapshot())
	g.FlipCard(a)
	g.PauseGame()
	if !g.Snapshot().IsPlaying {
		t.Error("timer mode allowed a pause")
	}
}

func TestResetDropsPendingResolution(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	a, b := findPair(g.Snapshot())
	g.FlipCard(a)
	g.FlipCard(b)

	g.ResetGame()
	clk.Advance(MatchDelay)

	snap := g.Snapshot()
	if snap.MatchedPairs != 0 || snap.Moves != 0 {
		t.Errorf("stale commit landed: pairs %d, moves %d", snap.MatchedPairs, snap.Moves)
	}
	if snap.Phase != PhaseIdle || snap.IsPlaying {
		t.Errorf("after reset: phase %s, playing %v", snap.Phase, snap.IsPlaying)
	}
	for _, c := range snap.Cards {
		if c.IsFlipped || c.IsMatched {
			t.Fatalf("card %s not reset", c.ID)
		}
	}
}

func TestSettingsChangeRedealsAfterSettle(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	g.SetDifficulty(config.DifficultyMedium)
	if !g.Snapshot().IsLoading {
		t.Fatal("not loading after a difficulty change")
	}

	// Flips are ignored while loading.
	g.FlipCard(g.Snapshot().Cards[0].ID)
	if len(g.Snapshot().FlippedCards) != 0 {
		t.Error("flip accepted while loading")
	}

	clk.Advance(SettleDelay)

	snap := g.Snapshot()
	if snap.IsLoading {
		t.Error("still loading after the settle delay")
	}
	if len(snap.Cards) != 40 {
		t.Errorf("medium board has %d cards, want 40", len(snap.Cards))
	}
	if snap.Phase != PhaseIdle {
		t.Errorf("phase = %s, want %s", snap.Phase, PhaseIdle)
	}
}

func TestSetTimerDurationRescalesLimit(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeTimer)

	g.SetTimerDuration(100)
	clk.Advance(SettleDelay)

	if got := g.Snapshot().TimeRemaining; got != 150 { // 100 * easy 1.5x
		t.Errorf("TimeRemaining = %d, want 150", got)
	}
}

func TestSettingsPersistAcrossSessions(t *testing.T) {
	clk := clock.NewManual()
	kv := achievements.NewMemoryKV()

	g := New(Options{Clock: clk, Seed: 1, KV: kv})
	g.SetDifficulty(config.DifficultyHard)
	g.SetTheme("numbers")
	clk.Advance(SettleDelay)
	g.Close()

	saved, ok := LoadSettings(kv)
	if !ok {
		t.Fatal("no settings persisted")
	}
	if saved.Difficulty != config.DifficultyHard || saved.Theme != "numbers" {
		t.Errorf("saved = %+v", saved)
	}

	if _, ok := LoadSettings(achievements.NewMemoryKV()); ok {
		t.Error("LoadSettings found data in an empty store")
	}
}
