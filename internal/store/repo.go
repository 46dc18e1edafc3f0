package store

import (
	"context"
	"errors"
	"time"
)

// ErrSlotNotFound is returned by SlotRepo.Get when nothing is stored under a name.
var ErrSlotNotFound = errors.New("slot not found")

// ErrInvalidSlotName is returned for empty names or names that cannot be
// used as a storage key.
var ErrInvalidSlotName = errors.New("invalid slot name")

// SlotRepo is a named blob store. Each slot holds a single value that is
// replaced wholesale on Put.
type SlotRepo interface {
	// Get returns the bytes stored under name, or ErrSlotNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put replaces the value stored under name.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes name. Deleting a missing slot is not an error.
	Delete(ctx context.Context, name string) error
}

// Session event actions.
const (
	ActionStart   = "start"
	ActionSubmit  = "submit"
	ActionTimeout = "timeout"
)

// SessionEventData captures the data for a session lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string // start, submit, timeout
	Questions    int
	Correct      int
	DurationSecs int
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // only events for this session when set
}

// EventRepo provides append and query access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns events newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)
}

// NopEventRepo discards events. Used by backends without an event log.
type NopEventRepo struct{}

func (NopEventRepo) AppendSessionEvent(context.Context, SessionEventData) error { return nil }

func (NopEventRepo) QuerySessionEvents(context.Context, QueryOpts) ([]SessionEventRecord, error) {
	return nil, nil
}
