package mastery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/kuis/internal/store"
)

// SlotName is the storage slot holding the persisted mastered set.
const SlotName = "masteredQuestions"

// snapshotVersion is bumped when SnapshotData changes shape.
const snapshotVersion = 1

// ErrCorruptSnapshot is returned by Load when the stored value cannot be decoded.
var ErrCorruptSnapshot = errors.New("corrupt mastery snapshot")

// SnapshotData is the persisted form of a Tracker.
type SnapshotData struct {
	Version  int   `json:"version"`
	Mastered []int `json:"mastered"`
}

// Snapshot captures the tracker's current state.
func (t *Tracker) Snapshot() SnapshotData {
	ids := t.IDs()
	if ids == nil {
		ids = []int{}
	}
	return SnapshotData{Version: snapshotVersion, Mastered: ids}
}

// FromSnapshot rebuilds a tracker from persisted data.
func FromSnapshot(data SnapshotData) *Tracker {
	return NewTracker(data.Mastered...)
}

// Load restores the mastered set from repo. A missing slot yields an empty
// tracker. A corrupt slot yields an empty tracker and ErrCorruptSnapshot so
// the caller can log it and carry on.
func Load(ctx context.Context, repo store.SlotRepo) (*Tracker, error) {
	raw, err := repo.Get(ctx, SlotName)
	if err != nil {
		if errors.Is(err, store.ErrSlotNotFound) {
			return NewTracker(), nil
		}
		return NewTracker(), fmt.Errorf("load mastery: %w", err)
	}

	var data SnapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return NewTracker(), fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return FromSnapshot(data), nil
}

// Save writes the tracker to repo.
func Save(ctx context.Context, repo store.SlotRepo, t *Tracker) error {
	raw, err := json.Marshal(t.Snapshot())
	if err != nil {
		return fmt.Errorf("encode mastery: %w", err)
	}
	if err := repo.Put(ctx, SlotName, raw); err != nil {
		return fmt.Errorf("save mastery: %w", err)
	}
	return nil
}

// Clear removes the persisted mastered set.
func Clear(ctx context.Context, repo store.SlotRepo) error {
	if err := repo.Delete(ctx, SlotName); err != nil {
		return fmt.Errorf("clear mastery: %w", err)
	}
	return nil
}
