// Package quiz is the screen that runs one quiz session.
package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/router"
	"github.com/abhisek/kuis/internal/screen"
	"github.com/abhisek/kuis/internal/screens/results"
	"github.com/abhisek/kuis/internal/session"
	"github.com/abhisek/kuis/internal/ui/components"
	"github.com/abhisek/kuis/internal/ui/layout"
)

const (
	confirmSubmit  = "submit"
	confirmAbandon = "abandon"
)

// QuizScreen presents the questions of a session and drives its state machine.
type QuizScreen struct {
	engine  *engine.Engine
	session *session.Session
	timer   *countdown

	options components.OptionList
	confirm components.Confirm

	jumping    bool
	jumpCursor int

	errMsg   string
	finished bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates a quiz screen for a NotStarted session built by e.
func New(e *engine.Engine, s *session.Session) *QuizScreen {
	return &QuizScreen{
		engine:  e,
		session: s,
		timer:   newCountdown(s.ID()),
	}
}

// Init starts the session and its countdown.
func (q *QuizScreen) Init() tea.Cmd {
	q.engine.Begin(context.Background(), q.session)
	q.syncOptions()
	return q.timer.Start()
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

// HandlesBack reports true: Esc asks before abandoning the session.
func (q *QuizScreen) HandlesBack() bool {
	return true
}

// Status shows the countdown in the header.
func (q *QuizScreen) Status() string {
	return "⏱ " + session.FormatClock(q.session.Remaining())
}

// Session returns the session being played.
func (q *QuizScreen) Session() *session.Session {
	return q.session
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case q.confirm.Active:
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	case q.jumping:
		return []layout.KeyHint{
			{Key: "←→", Description: "Pick"},
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "g", Description: "Jump"},
		{Key: "s", Description: "Submit"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return q.handleTick(msg)

	case components.OptionChosenMsg:
		// The user may have moved on before the choice arrived.
		if msg.Position != q.session.CurrentIndex() {
			return q, nil
		}
		if q.session.Apply(session.Answer{Option: msg.Index}).Changed {
			q.options.Chosen = msg.Index
		}
		return q, nil

	case components.ConfirmMsg:
		return q.handleConfirm(msg)

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if !q.timer.Accept(msg) {
		return q, nil
	}
	tr := q.session.Apply(session.Tick{})
	if tr.TimedOut() || q.session.Terminal() {
		return q.finish()
	}
	return q, q.timer.next()
}

func (q *QuizScreen) handleConfirm(msg components.ConfirmMsg) (screen.Screen, tea.Cmd) {
	if !msg.OK || q.finished || q.session.Terminal() {
		return q, nil
	}
	switch msg.ID {
	case confirmSubmit:
		q.session.Apply(session.Submit{})
		return q.finish()
	case confirmAbandon:
		q.timer.Stop()
		q.engine.Logger().Info("session abandoned", "session", q.session.ID())
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return q, nil
}

// finish grades the session and replaces this screen with the results.
// It runs at most once.
func (q *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	if q.finished {
		return q, nil
	}
	q.timer.Stop()
	q.confirm.Active = false
	out, err := q.engine.Finish(context.Background(), q.session)
	if err != nil {
		q.errMsg = err.Error()
		return q, nil
	}
	q.finished = true
	next := results.New(q.engine, out)
	return q, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if q.errMsg != "" {
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if q.confirm.Active {
		var cmd tea.Cmd
		q.confirm, cmd = q.confirm.Update(msg)
		return q, cmd
	}
	if q.session.State() != session.InProgress {
		return q, nil
	}
	if q.jumping {
		return q.handleJumpKey(msg)
	}

	switch msg.String() {
	case "esc":
		q.confirm = components.NewConfirm(confirmAbandon, "Abandon this quiz?")
		return q, nil
	case "s":
		q.confirm = components.NewConfirm(confirmSubmit, "Submit your answers?")
		return q, nil
	case "right", "l":
		if q.session.Apply(session.Next{}).Changed {
			q.syncOptions()
		}
		return q, nil
	case "left", "h":
		if q.session.Apply(session.Previous{}).Changed {
			q.syncOptions()
		}
		return q, nil
	case "g":
		q.jumping = true
		q.jumpCursor = q.session.CurrentIndex()
		return q, nil
	}

	var cmd tea.Cmd
	q.options, cmd = q.options.Update(msg)
	return q, cmd
}

func (q *QuizScreen) handleJumpKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "g":
		q.jumping = false
	case "right", "l":
		q.jumpCursor = q.nextUnlocked(q.jumpCursor, 1)
	case "left", "h":
		q.jumpCursor = q.nextUnlocked(q.jumpCursor, -1)
	case "enter":
		q.jumping = false
		if !q.session.IsLocked(q.jumpCursor, q.engine.Mastery()) &&
			q.session.Apply(session.Navigate{Position: q.jumpCursor}).Changed {
			q.syncOptions()
		}
	}
	return q, nil
}

// nextUnlocked steps from p in direction dir, skipping locked positions.
// It stays on p when there is nowhere to go.
func (q *QuizScreen) nextUnlocked(p, dir int) int {
	for i := p + dir; i >= 0 && i < q.session.Len(); i += dir {
		if !q.session.IsLocked(i, q.engine.Mastery()) {
			return i
		}
	}
	return p
}

// syncOptions rebuilds the option list for the current position.
func (q *QuizScreen) syncOptions() {
	sq, ok := q.session.Current()
	if !ok {
		q.options = components.OptionList{}
		return
	}
	chosen, answered := q.session.Answer(q.session.CurrentIndex())
	if !answered {
		chosen = -1
	}
	q.options = components.NewOptionList(sq.Question.Options, chosen)
	q.options.Locked = q.session.IsLocked(q.session.CurrentIndex(), q.engine.Mastery())
	q.options.Position = q.session.CurrentIndex()
}
