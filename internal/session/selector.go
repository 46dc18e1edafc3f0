package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/abhisek/kuis/internal/bank"
	"github.com/abhisek/kuis/internal/mastery"
)

// ErrInvalidRequest is returned when the requested session size is not
// between 1 and the number of available questions.
var ErrInvalidRequest = errors.New("invalid question count")

// NoQuestionsRemaining labels the start option when every question is mastered.
const NoQuestionsRemaining = "0 questions remaining"

// preferredSizes are the session sizes offered when enough questions remain.
var preferredSizes = []int{5, 10, 15, 20, 25, 30, 40, 50}

// AvailableCount returns how many bank questions are not yet mastered.
func AvailableCount(b *bank.Bank, m *mastery.Tracker) int {
	n := 0
	for _, q := range b.Questions() {
		if !m.Has(q.ID) {
			n++
		}
	}
	return n
}

// OfferedSizes lists the session sizes to offer: the preferred sizes that
// fit, followed by available itself when it is not already listed.
func OfferedSizes(available int) []int {
	if available <= 0 {
		return nil
	}
	var out []int
	for _, n := range preferredSizes {
		if n <= available {
			out = append(out, n)
		}
	}
	if len(out) == 0 || out[len(out)-1] != available {
		out = append(out, available)
	}
	return out
}

// NewRand returns a generator seeded from the wall clock.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Select draws n distinct unmastered questions in random order. A nil rng
// uses NewRand.
func Select(b *bank.Bank, m *mastery.Tracker, n int, rng *rand.Rand) ([]SelectedQuestion, error) {
	var pool []bank.Question
	for _, q := range b.Questions() {
		if !m.Has(q.ID) {
			pool = append(pool, q)
		}
	}
	if n <= 0 || n > len(pool) {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInvalidRequest, n, len(pool))
	}
	if rng == nil {
		rng = NewRand()
	}

	// Partial Fisher-Yates: the first n slots end up a uniform sample.
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := make([]SelectedQuestion, n)
	for i := 0; i < n; i++ {
		out[i] = SelectedQuestion{Position: i, Question: pool[i]}
	}
	return out, nil
}
