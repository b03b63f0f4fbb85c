package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	keyNext    = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrev    = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keyCompare = key.NewBinding(key.WithKeys("enter"))
	keyHelp    = key.NewBinding(key.WithKeys("f1"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ComparisonCompleteMsg:
		m.computing = false
		m.err = msg.Err
		if msg.Err == nil {
			m.result = msg.Result
			m.breakEven = msg.BreakEven
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyQuit):
		if m.scene == SceneHelp && msg.String() == "esc" {
			m.scene = SceneForm
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, keyHelp):
		if m.scene == SceneHelp {
			m.scene = SceneForm
		} else {
			m.scene = SceneHelp
		}
		return m, nil
	}

	if m.scene != SceneForm {
		return m, nil
	}

	switch {
	case key.Matches(msg, keyNext):
		return m, m.moveFocus(1)
	case key.Matches(msg, keyPrev):
		return m, m.moveFocus(-1)
	case key.Matches(msg, keyCompare):
		m.computing = true
		return m, m.compareCmd()
	}
	return m.updateFocusedInput(msg)
}

// moveFocus shifts focus by delta fields, wrapping at either end
func (m *Model) moveFocus(delta int) tea.Cmd {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m.fields[m.focus].input.Focus()
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}
