// Package mastery tracks which questions the user has answered correctly.
// Mastered questions are never served again by the selector.
package mastery

import "sort"

// Tracker is a grow-only set of mastered question IDs.
type Tracker struct {
	ids map[int]struct{}
}

// NewTracker returns a tracker seeded with ids.
func NewTracker(ids ...int) *Tracker {
	t := &Tracker{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		t.ids[id] = struct{}{}
	}
	return t
}

// Add marks id as mastered. It reports whether id was newly added.
func (t *Tracker) Add(id int) bool {
	if t.ids == nil {
		t.ids = make(map[int]struct{})
	}
	if _, ok := t.ids[id]; ok {
		return false
	}
	t.ids[id] = struct{}{}
	return true
}

// Has reports whether id is mastered. A nil tracker masters nothing.
func (t *Tracker) Has(id int) bool {
	if t == nil {
		return false
	}
	_, ok := t.ids[id]
	return ok
}

// Len returns the number of mastered questions.
func (t *Tracker) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// IDs returns the mastered IDs in ascending order.
func (t *Tracker) IDs() []int {
	if t == nil {
		return nil
	}
	out := make([]int, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Retain drops IDs outside [0, bankLen) and returns how many were dropped.
// Used once after restoring a saved set against a bank that may have shrunk.
func (t *Tracker) Retain(bankLen int) int {
	if t == nil {
		return 0
	}
	dropped := 0
	for id := range t.ids {
		if id < 0 || id >= bankLen {
			delete(t.ids, id)
			dropped++
		}
	}
	return dropped
}
