// Package history shows past results and the session event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/analytics"
	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/router"
	"github.com/abhisek/kuis/internal/screen"
	"github.com/abhisek/kuis/internal/store"
	"github.com/abhisek/kuis/internal/ui/components"
	"github.com/abhisek/kuis/internal/ui/layout"
	"github.com/abhisek/kuis/internal/ui/theme"
)

// eventLimit caps how many session events are listed.
const eventLimit = 50

type eventsLoadedMsg struct {
	Events []store.SessionEventRecord
	Err    error
}

// HistoryScreen displays past results with summary stats, and can switch
// to the session event log.
type HistoryScreen struct {
	engine     *engine.Engine
	events     []store.SessionEventRecord
	eventsErr  string
	loaded     bool
	showEvents bool
	offset     int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(e *engine.Engine) *HistoryScreen {
	return &HistoryScreen{engine: e}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.engine.Events()
	return func() tea.Msg {
		events, err := repo.QuerySessionEvents(context.Background(), store.QueryOpts{Limit: eventLimit})
		return eventsLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	toggle := "Sessions"
	if s.showEvents {
		toggle = "Results"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: toggle},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if msg.Err != nil {
			s.eventsErr = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.showEvents = !s.showEvents
			s.offset = 0
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	if s.showEvents {
		body = s.renderEvents()
	} else {
		body = s.renderResults(cw)
	}

	lines := strings.Split(body, "\n")
	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := s.offset + height
	if end > len(lines) || height <= 0 {
		end = len(lines)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines[s.offset:end], "\n"))
}

func (s *HistoryScreen) renderResults(cw int) string {
	results := s.engine.History().Results()
	if len(results) == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo results yet. Finish a quiz to start your history!")
	}

	st := analytics.Summarize(results)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Card(fmt.Sprintf(
		"Sessions: %d   Best: %.2f%%\nAverage: %.2f%%   Latest: %.2f%%\nCorrect answers overall: %d of %d",
		st.Sessions, st.Best, st.Average, st.Latest, st.TotalCorrect, st.TotalQuestions), cw))
	b.WriteString("\n\n")

	// Newest first.
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		date := "unknown date"
		if !r.Timestamp.IsZero() {
			date = r.Timestamp.Local().Format("Jan 02, 2006 15:04")
		}
		style := theme.Correct
		if r.Percentage < 50 {
			style = theme.Incorrect
		}
		b.WriteString(fmt.Sprintf("%s   %d of %d   %s\n",
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(date),
			r.CorrectCount, r.TotalCount,
			style.Render(fmt.Sprintf("%.2f%%", r.Percentage))))
	}
	return b.String()
}

func (s *HistoryScreen) renderEvents() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case s.eventsErr != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render("\n\nError: " + s.eventsErr)
	case !s.loaded:
		return dim.Render("\n\nLoading sessions...")
	case len(s.events) == 0:
		return dim.Italic(true).Render("\n\nNo session events recorded.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, ev := range s.events {
		id := ev.SessionID
		if len(id) > 8 {
			id = id[:8]
		}
		line := fmt.Sprintf("%s  %s  %-7s  %d questions",
			ev.Timestamp.Local().Format("Jan 02 15:04:05"), id, ev.Action, ev.Questions)
		if ev.Action != store.ActionStart {
			line += fmt.Sprintf("  %d correct  %ds", ev.Correct, ev.DurationSecs)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
