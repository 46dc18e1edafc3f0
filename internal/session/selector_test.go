package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kuis/internal/mastery"
)

func TestAvailableCount(t *testing.T) {
	b := testBank(8)
	assert.Equal(t, 8, AvailableCount(b, mastery.NewTracker()))
	assert.Equal(t, 8, AvailableCount(b, nil))
	assert.Equal(t, 4, AvailableCount(b, mastery.NewTracker(0, 2, 4, 6)))
	assert.Equal(t, 0, AvailableCount(testBank(0), mastery.NewTracker()))
}

func TestOfferedSizes(t *testing.T) {
	tests := []struct {
		available int
		want      []int
	}{
		{0, nil},
		{3, []int{3}},
		{5, []int{5}},
		{7, []int{5, 7}},
		{12, []int{5, 10, 12}},
		{30, []int{5, 10, 15, 20, 25, 30}},
		{50, []int{5, 10, 15, 20, 25, 30, 40, 50}},
		{73, []int{5, 10, 15, 20, 25, 30, 40, 50, 73}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OfferedSizes(tt.available), "available=%d", tt.available)
	}
}

func TestSelect_SizeAndDistinct(t *testing.T) {
	b := testBank(20)
	m := mastery.NewTracker(1, 3, 5)
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 5, 17} {
		sel, err := Select(b, m, n, rng)
		require.NoError(t, err)
		require.Len(t, sel, n)

		seen := make(map[int]bool)
		for i, sq := range sel {
			assert.Equal(t, i, sq.Position)
			assert.False(t, m.Has(sq.Question.ID), "mastered question %d selected", sq.Question.ID)
			assert.False(t, seen[sq.Question.ID], "duplicate question %d", sq.Question.ID)
			seen[sq.Question.ID] = true
		}
	}
}

func TestSelect_InvalidRequest(t *testing.T) {
	b := testBank(6)
	m := mastery.NewTracker(0, 1)

	for _, n := range []int{0, -1, 5} {
		_, err := Select(b, m, n, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrInvalidRequest, "n=%d", n)
	}
}

func TestSelect_Deterministic(t *testing.T) {
	b := testBank(30)
	a, err := Select(b, nil, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	c, err := Select(b, nil, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestSelect_NilRand(t *testing.T) {
	sel, err := Select(testBank(5), nil, 5, nil)
	require.NoError(t, err)
	assert.Len(t, sel, 5)
}

// Eight questions, four of them mastered: only the other four are offered.
func TestEightQuestionScenario(t *testing.T) {
	b := testBank(8)
	m := mastery.NewTracker(0, 1, 2, 3)

	available := AvailableCount(b, m)
	require.Equal(t, 4, available)
	assert.Equal(t, []int{4}, OfferedSizes(available))

	sel, err := Select(b, m, 4, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	ids := make([]int, 0, len(sel))
	for _, sq := range sel {
		ids = append(ids, sq.Question.ID)
	}
	assert.ElementsMatch(t, []int{4, 5, 6, 7}, ids)

	_, err = Select(b, m, 5, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
