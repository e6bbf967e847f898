package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-match/internal/achievements"
	"github.com/vovakirdan/memory-match/internal/storage"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores/achievements"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	scoreboardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	unlockedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lockedStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ScoreboardModel shows the leaderboard and the achievement list.
type ScoreboardModel struct {
	scores       []storage.ScoreEntry
	achievements []achievements.Achievement
	table        table.Model
	help         help.Model
	keys         ScoreboardKeyMap
	showBadges   bool
	quitting     bool
}

// NewScoreboardModel builds the scoreboard from already-loaded data so the
// model itself stays free of storage errors.
func NewScoreboardModel(scores []storage.ScoreEntry, set []achievements.Achievement) ScoreboardModel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Difficulty", Width: 10},
		{Title: "Mode", Width: 11},
	}

	rows := make([]table.Row, 0, len(scores))
	for i, e := range scores {
		name := e.PlayerName
		if name == "" {
			name = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Moves),
			clockFormat(e.TimeSeconds),
			e.Difficulty,
			e.Mode,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	h := help.New()
	return ScoreboardModel{
		scores:       scores,
		achievements: set,
		table:        t,
		help:         h,
		keys:         DefaultScoreboardKeyMap(),
	}
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.showBadges = !m.showBadges
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.showBadges {
		b.WriteString(scoreboardTitleStyle.Render("Achievements"))
		b.WriteString("\n\n")
		for _, a := range m.achievements {
			line := fmt.Sprintf("%s %s · %s", a.Icon, a.Name, a.Description)
			if a.Unlocked {
				b.WriteString(unlockedStyle.Render("✓ " + line))
			} else {
				b.WriteString(lockedStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString(scoreboardTitleStyle.Render("Leaderboard"))
		b.WriteString("\n\n")
		if len(m.scores) == 0 {
			b.WriteString(lockedStyle.Render("no games recorded yet"))
			b.WriteString("\n")
		} else {
			b.WriteString(m.table.View())
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// RunScoreboard shows the leaderboard screen for data loaded by the caller.
func RunScoreboard(scores []storage.ScoreEntry, set []achievements.Achievement) error {
	_, err := tea.NewProgram(NewScoreboardModel(scores, set), tea.WithAltScreen()).Run()
	return err
}
