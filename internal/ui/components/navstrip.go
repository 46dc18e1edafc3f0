package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/ui/theme"
)

// NavState is how a position is drawn in the NavStrip.
type NavState int

const (
	NavOpen NavState = iota
	NavAnswered
	NavLocked
)

// NavStrip draws one numbered cell per session position.
type NavStrip struct {
	States  []NavState
	Current int
	Cursor  int // highlighted while jumping; -1 when not jumping
}

// View renders the strip, wrapping to fit width.
func (n NavStrip) View(width int) string {
	var (
		lines []string
		line  string
	)
	for i, st := range n.States {
		cell := n.cell(i, st)
		if line != "" && lipgloss.Width(line)+lipgloss.Width(cell)+1 > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += cell
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (n NavStrip) cell(i int, st NavState) string {
	label := fmt.Sprintf("%2d", i+1)
	style := lipgloss.NewStyle().Padding(0, 1)
	switch st {
	case NavAnswered:
		style = style.Foreground(theme.BgDark).Background(theme.Secondary)
	case NavLocked:
		style = style.Foreground(theme.BgDark).Background(theme.Success).Faint(true)
	default:
		style = style.Foreground(theme.Text).Background(theme.Border)
	}
	if i == n.Current {
		style = style.Bold(true).Underline(true)
	}
	if i == n.Cursor {
		style = style.Background(theme.Primary).Foreground(theme.Text)
	}
	return style.Render(label)
}
