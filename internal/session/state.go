// Package session implements the quiz session state machine, question
// selection and grading.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kuis/internal/bank"
)

// SecondsPerQuestion is the countdown budget granted per selected question.
const SecondsPerQuestion = 60

// State is the lifecycle phase of a session.
type State int

const (
	NotStarted State = iota // Built but the countdown has not begun
	InProgress              // Accepting navigation, answers and ticks
	TimedOut                // Countdown reached zero; frozen
	Submitted               // Submitted by the user; frozen
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case TimedOut:
		return "timed out"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// SelectedQuestion is a question placed at a position within a session.
type SelectedQuestion struct {
	Position int
	Question bank.Question
}

// Session tracks one attempt at a fixed list of questions.
type Session struct {
	id       string
	now      func() time.Time
	selected []SelectedQuestion

	state     State
	current   int
	remaining int
	answers   map[int]int
	started   map[int]time.Time
	durations map[int]float64
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used for durations and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithID sets the session id. By default a random UUID is used.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New builds a NotStarted session over selected.
func New(selected []SelectedQuestion, opts ...Option) *Session {
	sel := make([]SelectedQuestion, len(selected))
	copy(sel, selected)

	s := &Session{
		now:       time.Now,
		selected:  sel,
		state:     NotStarted,
		answers:   make(map[int]int),
		started:   make(map[int]time.Time),
		durations: make(map[int]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	return s
}

// Start begins the countdown and shows the first question. It reports
// whether the session changed; only a NotStarted session with at least one
// question can start.
func (s *Session) Start() bool {
	if s.state != NotStarted || len(s.selected) == 0 {
		return false
	}
	s.state = InProgress
	s.remaining = SecondsPerQuestion * len(s.selected)
	s.current = 0
	s.started[0] = s.now()
	return true
}

// NavigateTo makes position p current and restarts its visit timer.
// Out-of-range positions are ignored.
func (s *Session) NavigateTo(p int) bool {
	if s.state != InProgress || p < 0 || p >= len(s.selected) {
		return false
	}
	s.current = p
	s.started[p] = s.now()
	return true
}

// Next moves to the following position, if any.
func (s *Session) Next() bool {
	return s.NavigateTo(s.current + 1)
}

// Previous moves to the preceding position, if any.
func (s *Session) Previous() bool {
	return s.NavigateTo(s.current - 1)
}

// RecordAnswer stores option as the answer for the current position and
// records the time spent since the position was last entered. It does not
// advance. A later answer replaces an earlier one.
func (s *Session) RecordAnswer(option int) bool {
	if s.state != InProgress || s.current >= len(s.selected) {
		return false
	}
	q := s.selected[s.current].Question
	if option < 0 || option >= len(q.Options) {
		return false
	}
	s.durations[s.current] = s.now().Sub(s.started[s.current]).Seconds()
	s.answers[s.current] = option
	return true
}

// Tick consumes one second of the countdown. At zero the session times out,
// which is a forced submission.
func (s *Session) Tick() bool {
	if s.state != InProgress {
		return false
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.state = TimedOut
	}
	return true
}

// Submit ends an InProgress session. Terminal sessions are left as is.
func (s *Session) Submit() bool {
	if s.state != InProgress {
		return false
	}
	s.state = Submitted
	return true
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Terminal reports whether the session was submitted or timed out.
func (s *Session) Terminal() bool {
	return s.state == Submitted || s.state == TimedOut
}

// Len returns the number of selected questions.
func (s *Session) Len() int { return len(s.selected) }

// CurrentIndex returns the current position.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the question at the current position.
func (s *Session) Current() (SelectedQuestion, bool) {
	if s.current < 0 || s.current >= len(s.selected) {
		return SelectedQuestion{}, false
	}
	return s.selected[s.current], true
}

// Selected returns a copy of the selected questions in position order.
func (s *Session) Selected() []SelectedQuestion {
	out := make([]SelectedQuestion, len(s.selected))
	copy(out, s.selected)
	return out
}

// Answer returns the option chosen at position p.
func (s *Session) Answer(p int) (int, bool) {
	opt, ok := s.answers[p]
	return opt, ok
}

// AnsweredCount returns how many positions have an answer.
func (s *Session) AnsweredCount() int { return len(s.answers) }

// Duration returns the seconds recorded for position p at its last answer.
func (s *Session) Duration(p int) (float64, bool) {
	d, ok := s.durations[p]
	return d, ok
}

// Durations returns a copy of the recorded durations keyed by position.
func (s *Session) Durations() map[int]float64 {
	out := make(map[int]float64, len(s.durations))
	for p, d := range s.durations {
		out[p] = d
	}
	return out
}

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int { return s.remaining }

// Budget returns the initial countdown in seconds.
func (s *Session) Budget() int { return SecondsPerQuestion * len(s.selected) }

// Elapsed returns the countdown seconds consumed so far.
func (s *Session) Elapsed() int {
	if s.state == NotStarted {
		return 0
	}
	return s.Budget() - s.remaining
}

// LowTime reports whether less than a fifth of the budget is left.
func (s *Session) LowTime() bool {
	return s.state == InProgress && s.remaining*5 < s.Budget()
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time { return s.now() }

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
