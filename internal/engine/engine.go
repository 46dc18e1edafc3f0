// Package engine ties the question bank, the mastered set, the result
// history and the session event log together for one running process.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/abhisek/kuis/internal/analytics"
	"github.com/abhisek/kuis/internal/bank"
	"github.com/abhisek/kuis/internal/history"
	"github.com/abhisek/kuis/internal/mastery"
	"github.com/abhisek/kuis/internal/session"
	"github.com/abhisek/kuis/internal/store"
)

// Options configures an Engine. Only Bank is required.
type Options struct {
	Bank    *bank.Bank
	Mastery *mastery.Tracker
	History *history.History
	Events  store.EventRepo

	// MasterySlot persists the mastered set after every graded session.
	// Nil keeps mastery for the process lifetime only.
	MasterySlot store.SlotRepo

	Logger *slog.Logger
	Rand   *rand.Rand
	Clock  func() time.Time
}

// Engine is the process-wide owner of mastery and history.
type Engine struct {
	bank        *bank.Bank
	mastery     *mastery.Tracker
	history     *history.History
	events      store.EventRepo
	masterySlot store.SlotRepo
	logger      *slog.Logger
	rng         *rand.Rand
	clock       func() time.Time

	finished map[string]Outcome // by session id
}

// New builds an engine, filling unset options with in-memory defaults.
func New(opts Options) *Engine {
	e := &Engine{
		bank:        opts.Bank,
		mastery:     opts.Mastery,
		history:     opts.History,
		events:      opts.Events,
		masterySlot: opts.MasterySlot,
		logger:      opts.Logger,
		rng:         opts.Rand,
		clock:       opts.Clock,
		finished:    make(map[string]Outcome),
	}
	if e.bank == nil {
		e.bank = bank.New("", nil)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.mastery == nil {
		e.mastery = mastery.NewTracker()
	}
	if e.history == nil {
		e.history = history.New(store.NewMemorySlotRepo(), e.logger)
	}
	if e.events == nil {
		e.events = store.NopEventRepo{}
	}
	if e.rng == nil {
		e.rng = session.NewRand()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	return e
}

// Bank returns the loaded question bank.
func (e *Engine) Bank() *bank.Bank { return e.bank }

// Mastery returns the mastered set.
func (e *Engine) Mastery() *mastery.Tracker { return e.mastery }

// History returns the result history.
func (e *Engine) History() *history.History { return e.history }

// Events returns the session event log.
func (e *Engine) Events() store.EventRepo { return e.events }

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Available returns how many questions can still be served.
func (e *Engine) Available() int {
	return session.AvailableCount(e.bank, e.mastery)
}

// Offered returns the session sizes to offer on the start screen.
func (e *Engine) Offered() []int {
	return session.OfferedSizes(e.Available())
}

// NewSession selects n questions and builds a NotStarted session.
func (e *Engine) NewSession(n int) (*session.Session, error) {
	selected, err := session.Select(e.bank, e.mastery, n, e.rng)
	if err != nil {
		return nil, err
	}
	return session.New(selected, session.WithClock(e.clock)), nil
}

// Begin starts s and records the start event.
func (e *Engine) Begin(ctx context.Context, s *session.Session) session.Transition {
	tr := s.Apply(session.Start{})
	if tr.Changed {
		e.appendEvent(ctx, store.SessionEventData{
			SessionID: s.ID(),
			Action:    store.ActionStart,
			Questions: s.Len(),
		})
	}
	return tr
}

// Outcome is everything the results screen shows for a finished session.
type Outcome struct {
	SessionID string
	Result    session.Result
	TimedOut  bool
	Saved     bool // false when the history write failed

	Breakdown []session.QuestionOutcome
	Durations []analytics.DurationPoint
	Trend     []analytics.TrendPoint
}

// Finish grades s, records the result and returns what to display.
// A running session is submitted first. Finishing the same session again
// returns the first outcome without recording anything.
func (e *Engine) Finish(ctx context.Context, s *session.Session) (Outcome, error) {
	if out, ok := e.finished[s.ID()]; ok {
		return out, nil
	}
	res, err := session.Grade(e.bank, s, e.mastery)
	if err != nil {
		return Outcome{}, err
	}
	timedOut := s.State() == session.TimedOut

	saved := e.history.Append(ctx, res)
	e.saveMastery(ctx)

	action := store.ActionSubmit
	if timedOut {
		action = store.ActionTimeout
	}
	e.appendEvent(ctx, store.SessionEventData{
		SessionID:    s.ID(),
		Action:       action,
		Questions:    res.TotalCount,
		Correct:      res.CorrectCount,
		DurationSecs: s.Elapsed(),
	})

	e.logger.Info("session graded",
		"session", s.ID(),
		"correct", res.CorrectCount,
		"total", res.TotalCount,
		"timed_out", timedOut)

	out := Outcome{
		SessionID: s.ID(),
		Result:    res,
		TimedOut:  timedOut,
		Saved:     saved,
		Breakdown: session.Breakdown(e.bank, s),
		Durations: analytics.DurationSeries(s),
		Trend:     analytics.Trend(e.history.Results()),
	}
	e.finished[s.ID()] = out
	return out, nil
}

func (e *Engine) saveMastery(ctx context.Context) {
	if e.masterySlot == nil {
		return
	}
	if err := mastery.Save(ctx, e.masterySlot, e.mastery); err != nil {
		e.logger.Warn("mastery not saved", "err", err)
	}
}

func (e *Engine) appendEvent(ctx context.Context, data store.SessionEventData) {
	if err := e.events.AppendSessionEvent(ctx, data); err != nil {
		e.logger.Warn("session event not recorded", "action", data.Action, "session", data.SessionID, "err", err)
	}
}

// Status is the header summary: mastered questions out of the bank.
func (e *Engine) Status() string {
	return fmt.Sprintf("✓ %d/%d mastered", e.mastery.Len(), e.bank.Len())
}
