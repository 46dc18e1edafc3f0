package session

import (
	"fmt"
	"time"

	"github.com/abhisek/kuis/internal/bank"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// testBank builds n questions. Question i has options "a", "b", "c" and the
// correct answer is always "b" (option index 1).
func testBank(n int) *bank.Bank {
	records := make([]bank.Record, n)
	for i := range records {
		records[i] = bank.Record{
			Question: fmt.Sprintf("question %d", i),
			Options:  []string{"a", "b", "c"},
			Correct:  "b",
		}
	}
	return bank.New("test", records)
}

// inOrder selects the first n bank questions without shuffling.
func inOrder(b *bank.Bank, n int) []SelectedQuestion {
	qs := b.Questions()
	out := make([]SelectedQuestion, n)
	for i := 0; i < n; i++ {
		out[i] = SelectedQuestion{Position: i, Question: qs[i]}
	}
	return out
}

const (
	optWrong   = 0
	optCorrect = 1
)
