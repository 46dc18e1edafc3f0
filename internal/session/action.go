package session

// Action is a single mutation of a session. Every state change the UI makes
// goes through Session.Apply with one of the types below.
type Action interface {
	apply(s *Session) bool
}

// Start begins the countdown.
type Start struct{}

// Navigate jumps to Position.
type Navigate struct{ Position int }

// Next moves to the following position.
type Next struct{}

// Previous moves to the preceding position.
type Previous struct{}

// Answer chooses Option for the current position.
type Answer struct{ Option int }

// Tick consumes one second of the countdown.
type Tick struct{}

// Submit ends the session.
type Submit struct{}

func (Start) apply(s *Session) bool      { return s.Start() }
func (a Navigate) apply(s *Session) bool { return s.NavigateTo(a.Position) }
func (Next) apply(s *Session) bool       { return s.Next() }
func (Previous) apply(s *Session) bool   { return s.Previous() }
func (a Answer) apply(s *Session) bool   { return s.RecordAnswer(a.Option) }
func (Tick) apply(s *Session) bool       { return s.Tick() }
func (Submit) apply(s *Session) bool     { return s.Submit() }

// Transition describes the effect of an applied action.
type Transition struct {
	From    State
	To      State
	Changed bool // false when the action was ignored
}

// TimedOut reports whether this transition ended the session by timeout.
func (t Transition) TimedOut() bool {
	return t.From == InProgress && t.To == TimedOut
}

// Ended reports whether this transition moved the session to a terminal state.
func (t Transition) Ended() bool {
	return t.From == InProgress && (t.To == TimedOut || t.To == Submitted)
}

// Apply performs a and reports the resulting transition.
func (s *Session) Apply(a Action) Transition {
	from := s.state
	changed := a.apply(s)
	return Transition{From: from, To: s.state, Changed: changed}
}
