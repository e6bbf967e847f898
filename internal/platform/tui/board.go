package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/config"
	"github.com/vovakirdan/memory-match/internal/deck"
	"github.com/vovakirdan/memory-match/internal/engine"
	"github.com/vovakirdan/memory-match/internal/storage"
)

// Board styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	cardBackStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	cardFaceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	cardMatchedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("42")).
				Foreground(lipgloss.Color("42")).
				Padding(0, 1)

	cardCursorStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	messageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// BoardModel is the Bubble Tea model for one game session.
type BoardModel struct {
	game  *engine.Game
	store *storage.Store
	flash *FlashNotifier

	keys   BoardKeyMap
	help   help.Model
	cursor int
	width  int
	height int

	quitting   bool
	scoreSaved bool // Whether the finished game was already recorded
}

// NewBoardModel creates the board model for a prepared engine session.
// store may be nil; the game is then played without a leaderboard. flash
// may be nil; gameplay events then go unannounced.
func NewBoardModel(game *engine.Game, store *storage.Store, flash *FlashNotifier) BoardModel {
	h := help.New()
	h.ShowAll = false
	return BoardModel{
		game:  game,
		store: store,
		flash: flash,
		keys:  DefaultBoardKeyMap(),
		help:  h,
	}
}

// Init starts the refresh loop.
func (m BoardModel) Init() tea.Cmd {
	return refreshCmd()
}

// Update handles messages and updates the model state.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case RefreshMsg:
		m.maybeSaveScore()
		return m, refreshCmd()
	}

	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.game.Snapshot()
	cols := boardColumns(len(snap.Cards))

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < len(snap.Cards) {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(snap.Cards)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Flip):
		if m.cursor < len(snap.Cards) {
			m.game.FlipCard(snap.Cards[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.Restart):
		m.game.ResetGame()
		m.cursor = 0
		m.scoreSaved = false

	case key.Matches(msg, m.keys.Pause):
		m.game.PauseGame()
	}

	return m, nil
}

// maybeSaveScore records a finished game once. Multiplayer entries carry
// the winner's name; a tie is recorded without one.
func (m *BoardModel) maybeSaveScore() {
	snap := m.game.Snapshot()
	if !snap.IsGameComplete || m.scoreSaved {
		return
	}
	m.scoreSaved = true

	if m.store == nil || !m.game.Config().LeaderboardEnabled {
		return
	}

	settings := m.game.Settings()
	name := ""
	if winner := m.game.Winner(); winner != nil {
		name = winner.Name
	}

	//nolint:errcheck // Best-effort save, the session continues regardless
	m.store.SaveScore(storage.ScoreEntry{
		PlayerName:   name,
		Score:        m.game.Score().FinalScore,
		Moves:        snap.Moves,
		TimeSeconds:  snap.TimeSeconds,
		Difficulty:   string(settings.Difficulty),
		Mode:         string(settings.Mode),
		Achievements: achievements.UnlockedIDs(m.game.Achievements()),
	})
}

// View renders the board, the status line and help.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()
	settings := m.game.Settings()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Memory Match · %s · %s", settings.Mode, settings.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid(snap))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(snap, settings))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m BoardModel) renderGrid(snap engine.State) string {
	cols := boardColumns(len(snap.Cards))
	labelWidth := 0
	for _, c := range snap.Cards {
		if w := len(cardLabel(c)); w > labelWidth {
			labelWidth = w
		}
	}

	var rows []string
	for start := 0; start < len(snap.Cards); start += cols {
		end := start + cols
		if end > len(snap.Cards) {
			end = len(snap.Cards)
		}
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderCard(snap.Cards[i], i == m.cursor, labelWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m BoardModel) renderCard(c deck.Card, underCursor bool, width int) string {
	label := strings.Repeat("░", width)
	style := cardBackStyle
	switch {
	case c.IsMatched:
		label = pad(cardLabel(c), width)
		style = cardMatchedStyle
	case c.IsFlipped:
		label = pad(cardLabel(c), width)
		style = cardFaceStyle
	}
	if underCursor {
		style = cardCursorStyle
	}
	return style.Render(label)
}

func (m BoardModel) renderStatus(snap engine.State, settings engine.Settings) string {
	iface := m.game.Config()
	messages := m.game.Messages()

	parts := []string{
		fmt.Sprintf("moves %d", snap.Moves),
		fmt.Sprintf("pairs %d/%d", snap.MatchedPairs, snap.TotalPairs),
		fmt.Sprintf("time %s", clockFormat(snap.TimeSeconds)),
	}
	if iface.ShowStreak {
		parts = append(parts, fmt.Sprintf("streak %d (best %d)", snap.Streak, snap.MaxStreak))
	}
	if iface.ShowTimeRemaining {
		parts = append(parts, fmt.Sprintf("left %s", clockFormat(snap.TimeRemaining)))
	}
	line := statusStyle.Render(strings.Join(parts, " · "))
	if m.flash != nil {
		if text := m.flash.Flash(); text != "" {
			line += "  " + messageStyle.Render(text)
		}
	}

	if settings.Mode == config.ModeMultiplayer {
		line += "\n" + m.renderPlayers(snap)
	}

	switch {
	case snap.IsTimeUp:
		line += "\n" + warnStyle.Render(messages.TimeUp)
	case snap.IsGameComplete && settings.Mode == config.ModeMultiplayer:
		if winner := m.game.Winner(); winner != nil {
			line += "\n" + messageStyle.Render(fmt.Sprintf("%s: %s", messages.Win, winner.Name))
		} else {
			line += "\n" + messageStyle.Render("It's a tie!")
		}
		line += scoreLine(m.game)
	case snap.IsGameComplete:
		line += "\n" + messageStyle.Render(messages.GameComplete)
		line += scoreLine(m.game)
	case !snap.IsPlaying && !snap.IsLoading && snap.Moves == 0:
		line += "\n" + statusStyle.Render(messages.Initial)
	case !snap.IsPlaying && !snap.IsLoading:
		line += "\n" + statusStyle.Render("paused, flip a card to resume")
	}

	return line
}

func (m BoardModel) renderPlayers(snap engine.State) string {
	parts := make([]string, 0, len(snap.Players))
	for _, p := range snap.Players {
		entry := fmt.Sprintf("%s %d", p.Name, p.MatchedPairs)
		if p.IsActive && snap.PlayerTimerActive {
			entry = fmt.Sprintf("▶ %s (%ds)", entry, snap.PlayerTimeRemaining)
		} else if p.IsActive {
			entry = "▶ " + entry
		}
		if p.IsWinner {
			entry += " ★"
		}
		parts = append(parts, entry)
	}
	return statusStyle.Render(strings.Join(parts, "   "))
}

func scoreLine(game *engine.Game) string {
	b := game.Score()
	return "\n" + statusStyle.Render(fmt.Sprintf(
		"score %d (base %d, time +%d, moves +%d, streak ×%.1f)",
		b.FinalScore, b.BaseScore, b.TimeBonus, b.MovesBonus, b.StreakMultiplier,
	))
}

// cardLabel is the terminal face of a card: the number for the numeric
// theme, the pair's seed word for avatar themes.
func cardLabel(c deck.Card) string {
	if !strings.Contains(c.Content, "://") {
		return c.Content
	}
	return c.PairID()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func clockFormat(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// boardColumns picks a row width that keeps the grid close to square.
func boardColumns(cards int) int {
	switch {
	case cards <= 20:
		return 5
	case cards <= 40:
		return 8
	default:
		return 10
	}
}

// RunBoard starts the Bubble Tea program for a local session.
func RunBoard(game *engine.Game, store *storage.Store, flash *FlashNotifier) error {
	p := tea.NewProgram(
		NewBoardModel(game, store, flash),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
