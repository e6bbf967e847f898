package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-match/internal/engine"
	"github.com/vovakirdan/memory-match/internal/roster"
)

var (
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	formErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	formHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// NameFormModel collects and validates the multiplayer roster before a
// session starts.
type NameFormModel struct {
	game    *engine.Game
	inputs  []textinput.Model
	focused int
	errs    []string

	submitted bool
	cancelled bool
}

// NewNameFormModel builds the form, seeded from the engine's current
// roster (placeholder names on first entry).
func NewNameFormModel(game *engine.Game) NameFormModel {
	names := game.Settings().PlayerNames
	if len(names) < roster.MinPlayers {
		names = roster.DefaultNames(roster.MinPlayers)
	}

	m := NameFormModel{game: game}
	for i, name := range names {
		m.inputs = append(m.inputs, newNameInput(i, name))
	}
	m.inputs[0].Focus()
	return m
}

func newNameInput(i int, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = roster.DefaultName(i + 1)
	in.SetValue(value)
	in.CharLimit = 20
	in.Width = 24
	in.Prompt = fmt.Sprintf("Player %d: ", i+1)
	return in
}

// Cancelled reports whether the user backed out of the form.
func (m NameFormModel) Cancelled() bool { return m.cancelled }

// Submitted reports whether a valid roster was installed.
func (m NameFormModel) Submitted() bool { return m.submitted }

func (m NameFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m NameFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "tab", "down":
		m.setFocus((m.focused + 1) % len(m.inputs))
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focused - 1 + len(m.inputs)) % len(m.inputs))
		return m, nil

	case "ctrl+a":
		if len(m.inputs) < roster.MaxPlayers {
			m.inputs = append(m.inputs, newNameInput(len(m.inputs), ""))
		}
		return m, nil

	case "ctrl+d":
		if len(m.inputs) > roster.MinPlayers {
			m.inputs = m.inputs[:len(m.inputs)-1]
			if m.focused >= len(m.inputs) {
				m.setFocus(len(m.inputs) - 1)
			}
		}
		return m, nil

	case "enter":
		if m.focused < len(m.inputs)-1 {
			m.setFocus(m.focused + 1)
			return m, nil
		}
		return m.submit()
	}

	return m.updateInputs(msg)
}

func (m NameFormModel) submit() (tea.Model, tea.Cmd) {
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		names[i] = in.Value()
	}

	v := m.game.SetPlayerNames(names)
	if !v.IsValid {
		m.errs = v.Errors
		return m, nil
	}
	m.errs = nil
	m.submitted = true
	return m, tea.Quit
}

func (m *NameFormModel) setFocus(i int) {
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focused = i
}

func (m NameFormModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m NameFormModel) View() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render("Who is playing?"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	for _, e := range m.errs {
		b.WriteString(formErrStyle.Render("✗ " + e))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(formHintStyle.Render("enter: next/start · ctrl+a: add player · ctrl+d: remove · esc: cancel"))
	return b.String()
}

// RunNameForm collects the roster for a multiplayer session. It reports
// false when the user cancelled.
func RunNameForm(game *engine.Game) (bool, error) {
	model, err := tea.NewProgram(NewNameFormModel(game), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	form, ok := model.(NameFormModel)
	return ok && form.Submitted(), nil
}
