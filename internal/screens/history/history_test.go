package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/router"
	"github.com/abhisek/kuis/internal/session"
	"github.com/abhisek/kuis/internal/store"
)

type mockEventRepo struct {
	events []store.SessionEventRecord
}

func (m *mockEventRepo) AppendSessionEvent(context.Context, store.SessionEventData) error {
	return nil
}

func (m *mockEventRepo) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEventRecord, error) {
	return m.events, nil
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(engine.New(engine.Options{}))
	if !strings.Contains(s.View(100, 30), "No results yet") {
		t.Error("expected empty-history message")
	}
}

func TestHistoryScreen_ResultsAndStats(t *testing.T) {
	e := engine.New(engine.Options{})
	ctx := context.Background()
	e.History().Append(ctx, session.Result{Timestamp: time.Now(), CorrectCount: 1, TotalCount: 4, Percentage: 25})
	e.History().Append(ctx, session.Result{Timestamp: time.Now(), CorrectCount: 3, TotalCount: 4, Percentage: 75})

	view := New(e).View(100, 40)
	for _, want := range []string{"Sessions: 2", "Best: 75.00%", "Average: 50.00%", "3 of 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_SessionEvents(t *testing.T) {
	repo := &mockEventRepo{events: []store.SessionEventRecord{{
		Sequence:  2,
		Timestamp: time.Now(),
		SessionEventData: store.SessionEventData{
			SessionID: "0123456789abcdef", Action: store.ActionSubmit, Questions: 5, Correct: 3, DurationSecs: 42,
		},
	}}}
	s := New(engine.New(engine.Options{Events: repo}))

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	view := s.View(100, 30)
	if !strings.Contains(view, "01234567") || !strings.Contains(view, "3 correct") {
		t.Errorf("unexpected events view: %q", view)
	}
}

func TestHistoryScreen_Back(t *testing.T) {
	s := New(engine.New(engine.Options{}))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
