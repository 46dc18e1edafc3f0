package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kuis/internal/mastery"
)

func TestGrade_ThreeOfFive(t *testing.T) {
	b := testBank(5)
	clock := newFakeClock()
	s := New(inOrder(b, 5), WithClock(clock.Now))
	s.Start()

	// Positions 0, 2, 4 correct; 1 wrong; 3 unanswered.
	s.RecordAnswer(optCorrect)
	s.Next()
	s.RecordAnswer(optWrong)
	s.Next()
	s.RecordAnswer(optCorrect)
	s.NavigateTo(4)
	s.RecordAnswer(optCorrect)
	s.Submit()

	m := mastery.NewTracker()
	clock.Advance(time.Minute)
	r, err := Grade(b, s, m)
	require.NoError(t, err)

	assert.Equal(t, 3, r.CorrectCount)
	assert.Equal(t, 5, r.TotalCount)
	assert.InDelta(t, 60.0, r.Percentage, 1e-9)
	assert.Equal(t, clock.Now(), r.Timestamp)
	assert.Equal(t, []int{0, 2, 4}, m.IDs())
}

func TestGrade_IdempotentMastery(t *testing.T) {
	b := testBank(2)
	s := New(inOrder(b, 2))
	s.Start()
	s.RecordAnswer(optCorrect)
	m := mastery.NewTracker(0)

	r, err := Grade(b, s, m)
	require.NoError(t, err)
	assert.Equal(t, 1, r.CorrectCount)
	assert.Equal(t, 1, m.Len())
}

func TestGrade_SubmitsRunningSession(t *testing.T) {
	b := testBank(1)
	s := New(inOrder(b, 1))
	s.Start()

	r, err := Grade(b, s, mastery.NewTracker())
	require.NoError(t, err)
	assert.Equal(t, Submitted, s.State())
	assert.Equal(t, 0, r.CorrectCount)
	assert.InDelta(t, 0.0, r.Percentage, 1e-9)
}

func TestGrade_TimedOutSessionStaysTimedOut(t *testing.T) {
	b := testBank(1)
	s := New(inOrder(b, 1))
	s.Start()
	s.RecordAnswer(optCorrect)
	for s.State() == InProgress {
		s.Tick()
	}

	r, err := Grade(b, s, mastery.NewTracker())
	require.NoError(t, err)
	assert.Equal(t, TimedOut, s.State())
	assert.Equal(t, 1, r.CorrectCount)
}

func TestGrade_EmptySession(t *testing.T) {
	_, err := Grade(testBank(0), New(nil), mastery.NewTracker())
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestBreakdown(t *testing.T) {
	b := testBank(3)
	clock := newFakeClock()
	s := New(inOrder(b, 3), WithClock(clock.Now))
	s.Start()
	clock.Advance(3 * time.Second)
	s.RecordAnswer(optCorrect)
	s.Next()
	clock.Advance(5 * time.Second)
	s.RecordAnswer(optWrong)

	out := Breakdown(b, s)
	require.Len(t, out, 3)

	assert.Equal(t, QuestionOutcome{
		Position: 0, QuestionID: 0, Prompt: "question 0",
		Chosen: "b", Answered: true, Correct: "b", IsCorrect: true,
		Seconds: 3, HasDuration: true,
	}, out[0])

	assert.Equal(t, "a", out[1].Chosen)
	assert.False(t, out[1].IsCorrect)
	assert.InDelta(t, 5.0, out[1].Seconds, 1e-9)

	assert.False(t, out[2].Answered)
	assert.Equal(t, "", out[2].Chosen)
	assert.False(t, out[2].HasDuration)
}

func TestNavStatuses(t *testing.T) {
	b := testBank(3)
	s := New(inOrder(b, 3))
	s.Start()
	s.RecordAnswer(optWrong)
	s.NavigateTo(2)
	s.RecordAnswer(optCorrect)

	m := mastery.NewTracker(2)
	assert.Equal(t, []NavStatus{Answered, Unanswered, AlreadyMastered}, s.NavStatuses(m))
	assert.True(t, s.IsLocked(2, m))
	assert.False(t, s.IsLocked(0, m))
	assert.False(t, s.IsLocked(7, m))
}
