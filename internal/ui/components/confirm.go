package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/ui/theme"
)

// ConfirmMsg reports the answer to a Confirm prompt.
type ConfirmMsg struct {
	ID string
	OK bool
}

// Confirm is an inline yes/no prompt. While Active it swallows key presses.
type Confirm struct {
	ID     string
	Prompt string
	Active bool
}

// NewConfirm creates an active prompt.
func NewConfirm(id, prompt string) Confirm {
	return Confirm{ID: id, Prompt: prompt, Active: true}
}

// Update handles y/n. Esc counts as no.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.Active {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	var answer bool
	switch kmsg.String() {
	case "y", "Y":
		answer = true
	case "n", "N", "esc":
		answer = false
	default:
		return c, nil
	}
	c.Active = false
	id := c.ID
	return c, func() tea.Msg { return ConfirmMsg{ID: id, OK: answer} }
}

// View renders the prompt, or nothing when inactive.
func (c Confirm) View() string {
	if !c.Active {
		return ""
	}
	return theme.ButtonActive.Render(c.Prompt) + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("[y/n]")
}
