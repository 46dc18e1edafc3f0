package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/ui/theme"
)

// OptionChosenMsg is emitted when the user picks an option. Position is
// copied from the list that produced it.
type OptionChosenMsg struct {
	Position int
	Index    int
}

// OptionList shows a question's options and lets the user pick one with a
// digit key or with the arrows and enter. Chosen marks the recorded answer.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when unanswered
	Locked  bool

	// Position identifies what the options belong to and is carried by
	// every OptionChosenMsg.
	Position int
}

// NewOptionList creates a list with the cursor on the recorded answer, if any.
func NewOptionList(options []string, chosen int) OptionList {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	} else {
		chosen = -1
	}
	return OptionList{Options: options, Cursor: cursor, Chosen: chosen}
}

func (o OptionList) choose(i int) tea.Cmd {
	pos := o.Position
	return func() tea.Msg { return OptionChosenMsg{Position: pos, Index: i} }
}

// Update handles option keys. A locked list ignores everything.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Locked {
		return o, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
		return o, nil
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
		return o, nil
	case "enter":
		if len(o.Options) == 0 {
			return o, nil
		}
		return o, o.choose(o.Cursor)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(o.Options) {
			o.Cursor = i
			return o, o.choose(i)
		}
	}
	return o, nil
}

// View renders the options, one per line.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		marker := "( )"
		if i == o.Chosen {
			marker = "(•)"
		}
		prefix := "  "
		if i == o.Cursor && !o.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s %s", prefix, i+1, marker, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case o.Locked && i == o.Chosen:
			style = theme.Locked.Bold(true)
		case o.Locked:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Cursor:
			style = theme.Selected
		case i == o.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
