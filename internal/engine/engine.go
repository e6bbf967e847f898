// Package engine owns the live game session: the card board, flip
// resolution, turn order, timers and the orchestration of deck generation,
// scoring, validation and achievement checks. All mutation goes through the
// exported methods, which serialize on an internal mutex; readers get
// snapshot copies.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/clock"
	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/deck"
	"github.com/vovakirdan/memory-match/internal/roster"
	"github.com/vovakirdan/memory-match/internal/scoring"
)

// Resolution and settle delays. Time is injected through the clock port, so
// tests advance these instantly.
const (
	MatchDelay    = 1500 * time.Millisecond // both cards stay up while the match shows
	MismatchDelay = 1000 * time.Millisecond // both cards stay up before flipping back
	SettleDelay   = 500 * time.Millisecond  // loading pause after a settings change
	TickPeriod    = time.Second
	// playerTimerLag mirrors the brief pause before the per-player
	// countdown arms after a turn begins.
	playerTimerLag = 100 * time.Millisecond
)

// Notifier receives fire-and-forget gameplay events (sound/UX feedback).
// Implementations must not block and must not panic into the engine.
type Notifier interface {
	GameStart()
	CardFlip()
	Match()
	Mismatch()
	GameComplete()
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) GameStart()    {}
func (NopNotifier) CardFlip()     {}
func (NopNotifier) Match()        {}
func (NopNotifier) Mismatch()     {}
func (NopNotifier) GameComplete() {}

// Stats exposes lifetime per-mode progress counters. Loads that fail
// report zero; the engine treats the counters as best-effort.
type Stats interface {
	Completions(mode config.Mode) int
	Wins(mode config.Mode) int
	RecordCompletion(mode config.Mode, won bool) error
}

// Settings is the externally mutable configuration slice of a session.
type Settings struct {
	Difficulty    config.Difficulty
	Theme         string
	Mode          config.Mode
	TimerDuration int // user-selected seconds for the timer mode
	PlayerNames   []string
	CurrentPlayer int
	NamesValid    bool
}

// Options configures a new Game. Zero values get working defaults.
type Options struct {
	Tables   config.Tables
	Clock    clock.Clock
	Notifier Notifier
	KV       achievements.KV
	Stats    Stats
	Logger   *log.Logger
	Seed     int64 // 0 = time-based

	Difficulty    config.Difficulty
	Theme         string
	Mode          config.Mode
	TimerDuration int
}

// Game is the state machine controlling one player-facing session.
type Game struct {
	mu sync.Mutex

	tables   config.Tables
	clk      clock.Clock
	notifier Notifier
	kv       achievements.KV
	stats    Stats
	logger   *log.Logger
	rng      *rand.Rand

	machine *fsm.FSM

	// session stamps every deferred callback; bumping it on reset or
	// settings change turns stale callbacks into no-ops.
	session uint64

	settings Settings

	cards        []deck.Card
	flipped      []string
	matchedPairs int
	moves        int
	timeSeconds  int
	streak       int
	maxStreak    int
	complete     bool
	timeUp       bool
	playing      bool
	loading      bool
	showingMatch bool

	players []roster.Player

	timerLimit    int // resolved duration for the timer mode, seconds
	timeRemaining int

	playerTimeRemaining int
	playerTimerActive   bool

	gameTicker   clock.Handle
	playerTicker clock.Handle
	pending      clock.Handle // in-flight match/mismatch resolution
	settle       clock.Handle // in-flight settings settle

	achievementSet []achievements.Achievement
}

// New creates a session with a freshly generated, shuffled deck.
func New(opts Options) *Game {
	if len(opts.Tables.Modes) == 0 {
		opts.Tables = config.DefaultTables()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.KV == nil {
		opts.KV = achievements.NewMemoryKV()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyEasy
	}
	if opts.Theme == "" {
		opts.Theme = "avataaars"
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeClassic
	}
	if opts.TimerDuration == 0 {
		opts.TimerDuration = 180
	}

	g := &Game{
		tables:   opts.Tables,
		clk:      opts.Clock,
		notifier: opts.Notifier,
		kv:       opts.KV,
		stats:    opts.Stats,
		logger:   opts.Logger,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		settings: Settings{
			Difficulty:    opts.Difficulty,
			Theme:         opts.Theme,
			Mode:          opts.Mode,
			TimerDuration: opts.TimerDuration,
		},
	}
	g.machine = newMachine()
	g.achievementSet = achievements.Load(g.kv)

	g.mu.Lock()
	g.resetLocked(false)
	g.persistSettingsLocked()
	g.mu.Unlock()
	return g
}

// Close cancels every outstanding timer. The game must not be used after.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session++
	g.stopHandlesLocked()
}

// State is a read-only snapshot of the session.
type State struct {
	Cards        []deck.Card
	FlippedCards []string
	MatchedPairs int
	Moves        int
	TimeSeconds  int
	Streak       int
	MaxStreak    int

	IsGameComplete bool
	IsTimeUp       bool
	IsPlaying      bool
	IsLoading      bool
	ShowingMatch   bool

	Players             []roster.Player
	CurrentPlayer       int
	TimeRemaining       int
	PlayerTimeRemaining int
	PlayerTimerActive   bool

	TotalPairs int
	Phase      string
}

// Snapshot copies the current state for rendering or inspection.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	cards := make([]deck.Card, len(g.cards))
	copy(cards, g.cards)
	flipped := make([]string, len(g.flipped))
	copy(flipped, g.flipped)
	players := make([]roster.Player, len(g.players))
	copy(players, g.players)

	return State{
		Cards:               cards,
		FlippedCards:        flipped,
		MatchedPairs:        g.matchedPairs,
		Moves:               g.moves,
		TimeSeconds:         g.timeSeconds,
		Streak:              g.streak,
		MaxStreak:           g.maxStreak,
		IsGameComplete:      g.complete,
		IsTimeUp:            g.timeUp,
		IsPlaying:           g.playing,
		IsLoading:           g.loading,
		ShowingMatch:        g.showingMatch,
		Players:             players,
		CurrentPlayer:       g.settings.CurrentPlayer,
		TimeRemaining:       g.timeRemaining,
		PlayerTimeRemaining: g.playerTimeRemaining,
		PlayerTimerActive:   g.playerTimerActive,
		TotalPairs:          g.totalPairsLocked(),
		Phase:               g.machine.Current(),
	}
}

// Settings returns a copy of the current settings.
func (g *Game) Settings() Settings {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.settings
	s.PlayerNames = append([]string(nil), g.settings.PlayerNames...)
	return s
}

// Config returns the resolved mode config for the current settings.
func (g *Game) Config() config.ModeConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tables.Resolve(g.settings.Mode, g.settings.Difficulty, g.settings.TimerDuration)
}

// Messages returns the status text for the current mode.
func (g *Game) Messages() config.MessageConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tables.Messages(g.settings.Mode)
}

// Achievements returns a copy of the current achievement set.
func (g *Game) Achievements() []achievements.Achievement {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]achievements.Achievement, len(g.achievementSet))
	copy(out, g.achievementSet)
	return out
}

// Score computes the breakdown for the session as it stands.
func (g *Game) Score() scoring.Breakdown {
	g.mu.Lock()
	defer g.mu.Unlock()
	return scoring.Calculate(
		g.moves,
		g.timeSeconds,
		g.tables.Difficulty(g.settings.Difficulty),
		g.maxStreak,
		g.settings.Mode,
	)
}

func (g *Game) totalPairsLocked() int {
	return g.tables.Difficulty(g.settings.Difficulty).Pairs
}

func (g *Game) debugf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Debugf(format, args...)
	}
}

func (g *Game) stopHandlesLocked() {
	for _, h := range []clock.Handle{g.gameTicker, g.playerTicker, g.pending, g.settle} {
		if h != nil {
			h.Stop()
		}
	}
	g.gameTicker = nil
	g.playerTicker = nil
	g.pending = nil
	g.settle = nil
}
