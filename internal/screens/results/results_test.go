package results

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kuis/internal/analytics"
	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/router"
	historyscreen "github.com/abhisek/kuis/internal/screens/history"
	"github.com/abhisek/kuis/internal/session"
)

func testOutcome() engine.Outcome {
	return engine.Outcome{
		SessionID: "s-1",
		Result: session.Result{
			Timestamp:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
			CorrectCount: 1,
			TotalCount:   2,
			Percentage:   50,
		},
		Saved: true,
		Breakdown: []session.QuestionOutcome{
			{Position: 0, Prompt: "Capital of France?", Chosen: "Paris", Answered: true, Correct: "Paris", IsCorrect: true, Seconds: 3.4, HasDuration: true},
			{Position: 1, Prompt: "2 + 2 = ?", Correct: "4"},
		},
		Durations: []analytics.DurationPoint{{Position: 0, Seconds: 3.4}},
		Trend:     []analytics.TrendPoint{{Label: "09:30", Percentage: 50}},
	}
}

func TestResults_Render(t *testing.T) {
	r := New(engine.New(engine.Options{}), testOutcome())
	view := r.render(60)

	for _, want := range []string{
		"Correct answers: 1 of 2",
		"Score: 50.00%",
		"Capital of France?",
		"Not answered",
		"Fastest: #1 (3.4s)",
		"09:30",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Time is up!") {
		t.Error("submitted session must not show the timeout notice")
	}
	if strings.Contains(view, "history not saved") {
		t.Error("saved result must not show the notice")
	}
}

func TestResults_TimeoutAndUnsaved(t *testing.T) {
	out := testOutcome()
	out.TimedOut = true
	out.Saved = false
	view := New(engine.New(engine.Options{}), out).render(60)

	if !strings.Contains(view, "Time is up!") {
		t.Error("expected timeout notice")
	}
	if !strings.Contains(view, "history not saved") {
		t.Error("expected unsaved notice")
	}
}

func TestResults_NoDurations(t *testing.T) {
	out := testOutcome()
	out.Durations = nil
	out.Trend = nil
	view := New(engine.New(engine.Options{}), out).render(60)
	if !strings.Contains(view, "No answers recorded.") {
		t.Error("expected empty duration notice")
	}
}

func TestResults_EnterRestarts(t *testing.T) {
	r := New(engine.New(engine.Options{}), testOutcome())
	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
}

func TestResults_HistoryKey(t *testing.T) {
	r := New(engine.New(engine.Options{}), testOutcome())
	_, cmd := r.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command on h")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*historyscreen.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", msg.Screen)
	}
}

func TestResults_ScrollIsClamped(t *testing.T) {
	r := New(engine.New(engine.Options{}), testOutcome())
	for i := 0; i < 500; i++ {
		r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if r.View(100, 10) == "" {
		t.Error("expected visible content after scrolling")
	}
	if r.offset >= 500 {
		t.Error("offset should be clamped to the content")
	}
}
