package store

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type sqliteSlotRepo struct {
	drv *entsql.Driver
}

func (r *sqliteSlotRepo) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, ErrInvalidSlotName
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table(SlotsTable.Name)).
		Where(entsql.EQ("name", name)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query slot %s: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query slot %s: %w", name, err)
		}
		return nil, ErrSlotNotFound
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("scan slot %s: %w", name, err)
	}
	return data, nil
}

func (r *sqliteSlotRepo) Put(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return ErrInvalidSlotName
	}
	if data == nil {
		data = []byte{}
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(SlotsTable.Name).
		Columns("name", "data", "updated_at").
		Values(name, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	return nil
}

func (r *sqliteSlotRepo) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrInvalidSlotName
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Delete(SlotsTable.Name).
		Where(entsql.EQ("name", name)).
		Query()

	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete slot %s: %w", name, err)
	}
	return nil
}
