package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the global sequence counter.
type eventRepo struct {
	db    *sql.DB
	seq   *sequenceCounter
	runID string
	now   func() time.Time
}

var metaColumns = []string{"id", "sequence", "run_id", "timestamp"}

// insert appends one row to table, stamping it with the next sequence, the
// run id and the current time.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	q, args := builder.Insert(table).
		Columns(append([]string{"sequence", "run_id", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, r.runID, r.now().UnixMilli()}, vals...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first query over table honoring opts.
func selectEvents(table string, opts QueryOpts, cols ...string) *entsql.Selector {
	all := append(append([]string{}, metaColumns...), cols...)
	sel := builder.Select(all...).
		From(builder.Table(table)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

// queryRows runs sel and calls scan for each row.
func queryRows(ctx context.Context, db *sql.DB, sel *entsql.Selector, scan func(rows *sql.Rows) error) error {
	q, args := sel.Query()
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// metaDest returns scan destinations for the meta columns. ts must be
// converted with fillTimestamp after scanning.
func metaDest(meta *EventMeta, ts *int64) []any {
	return []any{&meta.ID, &meta.Sequence, &meta.RunID, ts}
}

func fillTimestamp(meta *EventMeta, ts int64) {
	meta.Timestamp = time.UnixMilli(ts).UTC()
}
