package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/session"
	"github.com/abhisek/kuis/internal/ui/components"
	"github.com/abhisek/kuis/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	if q.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s\n\nPress any key to go back.", q.errMsg))
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(q.renderInfoLine(cw))
	b.WriteString("\n")
	b.WriteString(q.renderTimeBar(cw))
	b.WriteString("\n\n")

	if sq, ok := q.session.Current(); ok {
		prompt := lipgloss.NewStyle().
			Width(cw).
			Foreground(theme.Text).
			Bold(true).
			Render(sq.Question.Prompt)
		b.WriteString(prompt)
		b.WriteString("\n\n")
		b.WriteString(q.options.View())
		if q.options.Locked {
			b.WriteString(theme.Hint.Render("Already mastered in an earlier session."))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	strip := components.NavStrip{
		States:  q.navStates(),
		Current: q.session.CurrentIndex(),
		Cursor:  -1,
	}
	if q.jumping {
		strip.Cursor = q.jumpCursor
	}
	b.WriteString(components.Card(strip.View(cw-6), cw))
	b.WriteString("\n")

	if q.confirm.Active {
		b.WriteString("\n")
		b.WriteString(q.confirm.View())
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (q *QuizScreen) renderInfoLine(cw int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", q.session.CurrentIndex()+1, q.session.Len()))

	clock := lipgloss.NewStyle().Foreground(theme.Accent)
	if q.session.LowTime() {
		clock = clock.Foreground(theme.Error).Bold(true)
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("answered %d/%d  ", q.session.AnsweredCount(), q.session.Len())) +
		clock.Render(session.FormatClock(q.session.Remaining()))

	gap := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (q *QuizScreen) renderTimeBar(cw int) string {
	var pct float64
	if budget := q.session.Budget(); budget > 0 {
		pct = float64(q.session.Remaining()) / float64(budget)
	}
	bar := components.NewProgressBar("", pct, false, cw)
	bar.Warn = q.session.LowTime()
	return bar.View()
}

func (q *QuizScreen) navStates() []components.NavState {
	statuses := q.session.NavStatuses(q.engine.Mastery())
	out := make([]components.NavState, len(statuses))
	for i, st := range statuses {
		switch st {
		case session.Answered:
			out[i] = components.NavAnswered
		case session.AlreadyMastered:
			out[i] = components.NavLocked
		default:
			out[i] = components.NavOpen
		}
	}
	return out
}
