// Package results shows the outcome of a finished quiz session.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/analytics"
	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/router"
	"github.com/abhisek/kuis/internal/screen"
	historyscreen "github.com/abhisek/kuis/internal/screens/history"
	"github.com/abhisek/kuis/internal/ui/components"
	"github.com/abhisek/kuis/internal/ui/layout"
	"github.com/abhisek/kuis/internal/ui/theme"
)

// ResultsScreen displays the score, the per-question breakdown and charts.
type ResultsScreen struct {
	engine  *engine.Engine
	outcome engine.Outcome
	offset  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen for a graded session.
func New(e *engine.Engine, out engine.Outcome) *ResultsScreen {
	return &ResultsScreen{engine: e, outcome: out}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

// Status shows the mastered count in the header.
func (r *ResultsScreen) Status() string {
	return r.engine.Status()
}

// Outcome returns the graded outcome being shown.
func (r *ResultsScreen) Outcome() engine.Outcome {
	return r.outcome
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "New quiz"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "h", Description: "History"},
		{Key: "q", Description: "Quit"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "enter", "r":
		return r, func() tea.Msg { return router.PopToRootMsg{} }
	case "h":
		next := historyscreen.New(r.engine)
		return r, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "q":
		return r, tea.Quit
	case "up", "k":
		if r.offset > 0 {
			r.offset--
		}
	case "down", "j":
		r.offset++
	case "home":
		r.offset = 0
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := strings.Split(r.render(cw), "\n")

	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if r.offset > maxOffset {
		r.offset = maxOffset
	}
	end := r.offset + height
	if end > len(lines) || height <= 0 {
		end = len(lines)
	}
	visible := strings.Join(lines[r.offset:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}

func (r *ResultsScreen) render(cw int) string {
	out := r.outcome
	res := out.Result

	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	if out.TimedOut {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Time is up!"))
		b.WriteString("\n\n")
	}

	score := fmt.Sprintf("Correct answers: %d of %d\nScore: %.2f%%", res.CorrectCount, res.TotalCount, res.Percentage)
	b.WriteString(components.Card(theme.Body.Bold(true).Render(score), cw))
	b.WriteString("\n")
	if !out.Saved {
		b.WriteString(theme.Notice.Faint(true).Render("history not saved"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(heading.Render("Questions"))
	b.WriteString("\n")
	for _, o := range out.Breakdown {
		mark := theme.Incorrect.Render("✗")
		if o.IsCorrect {
			mark = theme.Correct.Render("✓")
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, o.Position+1, o.Prompt))

		answer := "Not answered"
		if o.Answered {
			answer = o.Chosen
		}
		b.WriteString(dim.Render("     Your answer: ") + answer + "\n")
		if !o.IsCorrect {
			b.WriteString(dim.Render("     Correct answer: ") + theme.Correct.Render(o.Correct) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(heading.Render("Time per question"))
	b.WriteString("\n")
	b.WriteString(r.renderDurations(cw))
	b.WriteString("\n\n")

	b.WriteString(heading.Render("Score trend"))
	b.WriteString("\n")
	b.WriteString(renderTrend(out.Trend, cw))
	b.WriteString("\n")

	return b.String()
}

func (r *ResultsScreen) renderDurations(cw int) string {
	points := r.outcome.Durations
	if len(points) == 0 {
		return theme.Hint.Render("No answers recorded.")
	}

	correct := make(map[int]bool, len(r.outcome.Breakdown))
	for _, o := range r.outcome.Breakdown {
		correct[o.Position] = o.IsCorrect
	}

	bars := make([]components.Bar, len(points))
	for i, p := range points {
		bar := components.Bar{Label: fmt.Sprintf("#%d", p.Position+1), Value: p.Seconds, Color: theme.Error}
		if correct[p.Position] {
			bar.Color = theme.Success
		}
		bars[i] = bar
	}

	secs := analytics.Seconds(points)
	fastest := analytics.Fastest(secs)
	slowest := analytics.Slowest(secs)

	var b strings.Builder
	b.WriteString(components.BarChart{Bars: bars, Format: "%.1fs"}.View(cw))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Fastest: #%d (%.1fs)   Slowest: #%d (%.1fs)   Average: %.1fs",
		points[fastest.Position].Position+1, fastest.Seconds,
		points[slowest.Position].Position+1, slowest.Seconds,
		analytics.AverageDuration(secs)))
	return b.String()
}

func renderTrend(points []analytics.TrendPoint, cw int) string {
	if len(points) == 0 {
		return theme.Hint.Render("No history yet.")
	}
	bars := make([]components.Bar, len(points))
	for i, p := range points {
		bars[i] = components.Bar{Label: p.Label, Value: p.Percentage, Color: theme.Primary}
	}
	return components.BarChart{Bars: bars, Max: 100, Format: "%.2f%%"}.View(cw)
}
