package store

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(SessionEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "action", "questions", "correct", "duration_secs").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Action, data.Questions, data.Correct, data.DurationSecs).
		Query()

	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "session_id", "action", "questions", "correct", "duration_secs").
		From(entsql.Table(SessionEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if opts.SessionID != "" {
		sel = sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var rec SessionEventRecord
		if err := rows.Scan(
			&rec.Sequence,
			&rec.Timestamp,
			&rec.SessionID,
			&rec.Action,
			&rec.Questions,
			&rec.Correct,
			&rec.DurationSecs,
		); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}
