package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	clock := newFakeClock()
	s := New(inOrder(testBank(2), 2), WithClock(clock.Now))

	tr := s.Apply(Start{})
	assert.Equal(t, Transition{From: NotStarted, To: InProgress, Changed: true}, tr)

	tr = s.Apply(Navigate{Position: 1})
	assert.True(t, tr.Changed)
	assert.Equal(t, 1, s.CurrentIndex())

	tr = s.Apply(Next{})
	assert.False(t, tr.Changed)

	tr = s.Apply(Answer{Option: 2})
	assert.True(t, tr.Changed)
	opt, _ := s.Answer(1)
	assert.Equal(t, 2, opt)

	tr = s.Apply(Previous{})
	assert.True(t, tr.Changed)
	assert.Equal(t, 0, s.CurrentIndex())

	tr = s.Apply(Submit{})
	assert.Equal(t, InProgress, tr.From)
	assert.Equal(t, Submitted, tr.To)
	assert.True(t, tr.Ended())
	assert.False(t, tr.TimedOut())
}

func TestApply_TickReportsTimeout(t *testing.T) {
	s := New(inOrder(testBank(1), 1))
	s.Apply(Start{})

	var last Transition
	for i := 0; i < SecondsPerQuestion; i++ {
		last = s.Apply(Tick{})
	}
	require.True(t, last.TimedOut())
	assert.True(t, last.Ended())

	after := s.Apply(Tick{})
	assert.False(t, after.Changed)
	assert.False(t, after.TimedOut())
	assert.Equal(t, TimedOut, after.From)
}
