// Package tui provides the Bubble Tea integration for the memory game.
// It handles the terminal UI loop, input mapping, and session flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshMsg is sent to re-read engine state while timers run.
type RefreshMsg time.Time

// refreshInterval is how often the board view re-reads the engine. The
// engine runs its own clocks; the view only needs to stay fresh.
const refreshInterval = 200 * time.Millisecond

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}
