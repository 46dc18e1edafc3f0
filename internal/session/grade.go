package session

import (
	"errors"
	"time"

	"github.com/abhisek/kuis/internal/bank"
	"github.com/abhisek/kuis/internal/mastery"
)

// ErrEmptySession is returned when grading a session with no questions.
var ErrEmptySession = errors.New("session has no questions")

// Result is the graded outcome of one session.
type Result struct {
	Timestamp    time.Time
	CorrectCount int
	TotalCount   int
	Percentage   float64
}

// question resolves the question at a selected slot, preferring the bank's copy.
func question(b *bank.Bank, sq SelectedQuestion) bank.Question {
	if q, ok := b.Question(sq.Question.ID); ok {
		return q
	}
	return sq.Question
}

// Grade scores s and adds every correctly answered question to m.
// A session that is still running is submitted first.
func Grade(b *bank.Bank, s *Session, m *mastery.Tracker) (Result, error) {
	total := s.Len()
	if total == 0 {
		return Result{}, ErrEmptySession
	}
	if !s.Terminal() {
		s.Submit()
	}

	correct := 0
	for _, sq := range s.selected {
		q := question(b, sq)
		opt, ok := s.answers[sq.Position]
		if !ok || q.OptionText(opt) != q.Correct {
			continue
		}
		correct++
		if m != nil {
			m.Add(q.ID)
		}
	}

	return Result{
		Timestamp:    s.now(),
		CorrectCount: correct,
		TotalCount:   total,
		Percentage:   100 * float64(correct) / float64(total),
	}, nil
}

// QuestionOutcome is one row of the per-question results breakdown.
type QuestionOutcome struct {
	Position    int
	QuestionID  int
	Prompt      string
	Chosen      string // "" when unanswered
	Answered    bool
	Correct     string
	IsCorrect   bool
	Seconds     float64
	HasDuration bool
}

// Breakdown lists the outcome of every position in order.
func Breakdown(b *bank.Bank, s *Session) []QuestionOutcome {
	out := make([]QuestionOutcome, 0, s.Len())
	for _, sq := range s.selected {
		q := question(b, sq)
		o := QuestionOutcome{
			Position:   sq.Position,
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Correct:    q.Correct,
		}
		if opt, ok := s.answers[sq.Position]; ok {
			o.Answered = true
			o.Chosen = q.OptionText(opt)
			o.IsCorrect = o.Chosen == q.Correct
		}
		o.Seconds, o.HasDuration = s.durations[sq.Position]
		out = append(out, o)
	}
	return out
}
