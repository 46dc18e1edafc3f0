package session

import "github.com/abhisek/kuis/internal/mastery"

// NavStatus is how a position is shown in the navigation strip.
type NavStatus int

const (
	Unanswered NavStatus = iota
	Answered
	AlreadyMastered // mastered in an earlier session; not selectable
)

// NavStatuses returns the status of every position. Mastery wins over an answer.
func (s *Session) NavStatuses(m *mastery.Tracker) []NavStatus {
	out := make([]NavStatus, len(s.selected))
	for i, sq := range s.selected {
		switch {
		case m.Has(sq.Question.ID):
			out[i] = AlreadyMastered
		case s.hasAnswer(i):
			out[i] = Answered
		default:
			out[i] = Unanswered
		}
	}
	return out
}

// IsLocked reports whether position p holds a question mastered before this
// session was graded. The UI disables its answer keys and jump entry.
func (s *Session) IsLocked(p int, m *mastery.Tracker) bool {
	if p < 0 || p >= len(s.selected) {
		return false
	}
	return m.Has(s.selected[p].Question.ID)
}

func (s *Session) hasAnswer(p int) bool {
	_, ok := s.answers[p]
	return ok
}
