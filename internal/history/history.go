// Package history keeps the append-only log of graded session results.
//
// The log lives in a single storage slot and is rewritten in full on every
// append. Storage problems never reach the user as errors: a log that cannot
// be read starts empty and a log that cannot be written stays in memory.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/kuis/internal/session"
	"github.com/abhisek/kuis/internal/store"
)

// SlotName is the storage slot holding the serialized history.
const SlotName = "performanceData"

// entry is the stored form of one result.
type entry struct {
	Date           string  `json:"date"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
}

func toEntry(r session.Result) entry {
	return entry{
		Date:           r.Timestamp.UTC().Format(time.RFC3339Nano),
		Score:          r.CorrectCount,
		TotalQuestions: r.TotalCount,
		Percentage:     r.Percentage,
	}
}

func (e entry) result() session.Result {
	// Unparseable dates keep the zero time; the entry itself is kept.
	ts, _ := time.Parse(time.RFC3339Nano, e.Date)
	return session.Result{
		Timestamp:    ts,
		CorrectCount: e.Score,
		TotalCount:   e.TotalQuestions,
		Percentage:   e.Percentage,
	}
}

// Encode serializes results in the stored wire format.
func Encode(results []session.Result) ([]byte, error) {
	entries := make([]entry, len(results))
	for i, r := range results {
		entries[i] = toEntry(r)
	}
	return json.Marshal(entries)
}

// Decode parses the stored wire format.
func Decode(data []byte) ([]session.Result, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	out := make([]session.Result, len(entries))
	for i, e := range entries {
		out[i] = e.result()
	}
	return out, nil
}

// History is the in-memory copy of the result log plus its backing slot.
type History struct {
	slot    store.SlotRepo
	logger  *slog.Logger
	results []session.Result
}

// New returns an empty history backed by slot. A nil logger discards.
func New(slot store.SlotRepo, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &History{slot: slot, logger: logger}
}

// Load replaces the in-memory log with the stored one. A missing, unreadable
// or malformed slot yields an empty history.
func (h *History) Load(ctx context.Context) []session.Result {
	h.results = nil

	raw, err := h.slot.Get(ctx, SlotName)
	if err != nil {
		if !errors.Is(err, store.ErrSlotNotFound) {
			h.logger.Warn("history unreadable, starting empty", "slot", SlotName, "err", err)
		}
		return h.Results()
	}

	results, err := Decode(raw)
	if err != nil {
		h.logger.Warn("history malformed, starting empty", "slot", SlotName, "err", err)
		return h.Results()
	}
	h.results = results
	return h.Results()
}

// Append adds r and rewrites the stored log. It reports whether the write
// succeeded; on failure r is still kept in memory.
func (h *History) Append(ctx context.Context, r session.Result) bool {
	h.results = append(h.results, r)

	if err := h.save(ctx); err != nil {
		h.logger.Warn("history not saved", "slot", SlotName, "entries", len(h.results), "err", err)
		return false
	}
	return true
}

func (h *History) save(ctx context.Context) error {
	raw, err := Encode(h.results)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return h.slot.Put(ctx, SlotName, raw)
}

// Reset clears the log in memory and in storage.
func (h *History) Reset(ctx context.Context) error {
	h.results = nil
	if err := h.slot.Delete(ctx, SlotName); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}

// Results returns a copy of the log, oldest first.
func (h *History) Results() []session.Result {
	out := make([]session.Result, len(h.results))
	copy(out, h.results)
	return out
}

// Len returns the number of logged results.
func (h *History) Len() int { return len(h.results) }

// Last returns the most recent result.
func (h *History) Last() (session.Result, bool) {
	if len(h.results) == 0 {
		return session.Result{}, false
	}
	return h.results[len(h.results)-1], true
}
