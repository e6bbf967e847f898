package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/memory-match/internal/clock"
	"github.com/vovakirdan/memory-match/internal/config"
)

func newMultiplayerGame(t *testing.T, clk clock.Clock, names ...string) *Game {
	t.Helper()
	g := New(Options{
		Clock: clk,
		Seed:  1,
		Mode:  config.ModeMultiplayer,
	})
	t.Cleanup(g.Close)

	v := g.SetPlayerNames(names)
	if !v.IsValid {
		t.Fatalf("SetPlayerNames(%v) invalid: %v", names, v.Errors)
	}
	g.StartGame()
	return g
}

func TestStartRefusedWithoutValidNames(t *testing.T) {
	clk := clock.NewManual()
	g := New(Options{Clock: clk, Seed: 1, Mode: config.ModeMultiplayer})
	defer g.Close()

	if g.CanStartGame() {
		t.Error("CanStartGame() true with no roster")
	}
	g.StartGame()
	if snap := g.Snapshot(); snap.IsPlaying || snap.Phase != PhaseIdle {
		t.Errorf("game started without names: playing %v, phase %s", snap.IsPlaying, snap.Phase)
	}

	if v := g.SetPlayerNames([]string{"Alice", "alice"}); v.IsValid {
		t.Error("duplicate names validated")
	}
	if g.CanStartGame() {
		t.Error("CanStartGame() true after failed validation")
	}
}

func TestMismatchAdvancesTurn(t *testing.T) {
	clk := clock.NewManual()
	g := newMultiplayerGame(t, clk, "Alice", "Bob", "Cara")

	if p := g.CurrentPlayer(); p == nil || p.Name != "Alice" {
		t.Fatalf("first player = %+v, want Alice", p)
	}

	a, b := findMismatch(g.Snapshot())
	g.FlipCard(a)
	g.FlipCard(b)

	// The turn passes immediately; only the flip-back is delayed.
	if p := g.CurrentPlayer(); p == nil || p.Name != "Bob" {
		t.Fatalf("after mismatch current = %+v, want Bob", p)
	}
	snap := g.Snapshot()
	if snap.Players[0].Moves != 1 {
		t.Errorf("Alice's moves = %d, want 1", snap.Players[0].Moves)
	}
	if !snap.PlayerTimerActive || snap.PlayerTimeRemaining != 10 {
		t.Errorf("turn clock not restarted: active %v, remaining %d",
			snap.PlayerTimerActive, snap.PlayerTimeRemaining)
	}

	clk.Advance(MismatchDelay)

	// Round-robin wraps.
	for _, want := range []string{"Cara", "Alice"} {
		a, b = findMismatch(g.Snapshot())
		g.FlipCard(a)
		g.FlipCard(b)
		if p := g.CurrentPlayer(); p == nil || p.Name != want {
			t.Fatalf("current = %+v, want %s", p, want)
		}
		clk.Advance(MismatchDelay)
	}
}

func TestMatchKeepsTurnAndStopsTurnClock(t *testing.T) {
	clk := clock.NewManual()
	g := newMultiplayerGame(t, clk, "Alice", "Bob")

	a, b := findPair(g.Snapshot())
	g.FlipCard(a)
	g.FlipCard(b)
	clk.Advance(MatchDelay)

	if p := g.CurrentPlayer(); p == nil || p.Name != "Alice" {
		t.Fatalf("current = %+v, want Alice after a match", p)
	}
	snap := g.Snapshot()
	if snap.Players[0].MatchedPairs != 1 || snap.Players[0].Moves != 1 {
		t.Errorf("Alice's stats = %+v", snap.Players[0])
	}
	if snap.PlayerTimerActive {
		t.Error("turn clock still running after a match")
	}
}

func TestTurnTimeoutClearsFlipsAndAdvances(t *testing.T) {
	clk := clock.NewManual()
	g := newMultiplayerGame(t, clk, "Alice", "Bob")

	// The turn clock arms shortly after the game starts.
	clk.Advance(200 * time.Millisecond)
	if snap := g.Snapshot(); !snap.PlayerTimerActive {
		t.Fatal("turn clock not armed")
	}

	a, _ := findPair(g.Snapshot())
	g.FlipCard(a)
	clk.Advance(10 * time.Second)

	snap := g.Snapshot()
	if len(snap.FlippedCards) != 0 {
		t.Errorf("lone flip survived the timeout: %v", snap.FlippedCards)
	}
	if p := g.CurrentPlayer(); p == nil || p.Name != "Bob" {
		t.Errorf("current = %+v, want Bob after timeout", p)
	}
	if !snap.PlayerTimerActive || snap.PlayerTimeRemaining != 10 {
		t.Errorf("next turn clock: active %v, remaining %d",
			snap.PlayerTimerActive, snap.PlayerTimeRemaining)
	}
	if snap.Phase != PhaseAwaitingFirst {
		t.Errorf("phase = %s, want %s", snap.Phase, PhaseAwaitingFirst)
	}
}

func TestNextPlayerSkipsTurnManually(t *testing.T) {
	clk := clock.NewManual()
	g := newMultiplayerGame(t, clk, "Alice", "Bob")

	a, _ := findPair(g.Snapshot())
	g.FlipCard(a)
	g.NextPlayer()

	snap := g.Snapshot()
	if len(snap.FlippedCards) != 0 {
		t.Errorf("flips survived the skip: %v", snap.FlippedCards)
	}
	if p := g.CurrentPlayer(); p == nil || p.Name != "Bob" {
		t.Errorf("current = %+v, want Bob", p)
	}
}

func TestMultiplayerWinner(t *testing.T) {
	clk := clock.NewManual()
	g := newMultiplayerGame(t, clk, "Alice", "Bob")

	if w := g.Winner(); w != nil {
		t.Fatalf("Winner() = %+v before the game ends", w)
	}

	// Alice matches the whole board; a match keeps her turn.
	completeGame(t, g, clk)

	w := g.Winner()
	if w == nil || w.Name != "Alice" {
		t.Fatalf("Winner() = %+v, want Alice", w)
	}
	snap := g.Snapshot()
	if !snap.Players[0].IsWinner {
		t.Error("winner flag not set on Alice")
	}
	if snap.Players[1].IsWinner {
		t.Error("winner flag set on Bob")
	}
	if snap.Phase != PhaseComplete {
		t.Errorf("phase = %s, want %s", snap.Phase, PhaseComplete)
	}
}

func TestSwitchingToMultiplayerSeedsPlaceholders(t *testing.T) {
	clk := clock.NewManual()
	g := newTestGame(t, clk, config.ModeClassic)

	g.SetGameMode(config.ModeMultiplayer)
	clk.Advance(SettleDelay)

	settings := g.Settings()
	if len(settings.PlayerNames) != 2 {
		t.Fatalf("placeholder roster = %v", settings.PlayerNames)
	}
	if settings.NamesValid || g.CanStartGame() {
		t.Error("placeholder roster counted as valid")
	}
}

type fakeStats struct {
	completions map[config.Mode]int
	wins        map[config.Mode]int
}

func newFakeStats() *fakeStats {
	return &fakeStats{
		completions: make(map[config.Mode]int),
		wins:        make(map[config.Mode]int),
	}
}

func (s *fakeStats) Completions(mode config.Mode) int { return s.completions[mode] }
func (s *fakeStats) Wins(mode config.Mode) int        { return s.wins[mode] }
func (s *fakeStats) RecordCompletion(mode config.Mode, won bool) error {
	s.completions[mode]++
	if won {
		s.wins[mode]++
	}
	return nil
}

func TestCompletionRecordsStats(t *testing.T) {
	clk := clock.NewManual()
	stats := newFakeStats()
	g := New(Options{Clock: clk, Seed: 1, Mode: config.ModeMultiplayer, Stats: stats})
	defer g.Close()

	if v := g.SetPlayerNames([]string{"Alice", "Bob"}); !v.IsValid {
		t.Fatalf("roster invalid: %v", v.Errors)
	}
	g.StartGame()
	completeGame(t, g, clk)

	if stats.completions[config.ModeMultiplayer] != 1 {
		t.Errorf("completions = %d, want 1", stats.completions[config.ModeMultiplayer])
	}
	if stats.wins[config.ModeMultiplayer] != 1 {
		t.Errorf("wins = %d, want 1 (unique winner)", stats.wins[config.ModeMultiplayer])
	}
}

func TestModeProgressAchievements(t *testing.T) {
	clk := clock.NewManual()
	stats := newFakeStats()
	stats.completions[config.ModeZen] = 9

	g := New(Options{Clock: clk, Seed: 1, Mode: config.ModeZen, Stats: stats})
	defer g.Close()

	// The tenth zen completion lands during this game.
	completeGame(t, g, clk)

	unlocked := false
	for _, a := range g.Achievements() {
		if a.ID == "zen_master" && a.Unlocked {
			unlocked = true
		}
	}
	if !unlocked {
		t.Error("zen_master not unlocked on the tenth completion")
	}
}
