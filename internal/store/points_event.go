package store

import (
	"context"
	"database/sql"
	"fmt"
)

var pointsColumns = []string{"delta", "balance", "reason"}

func (r *eventRepo) AppendPointsEvent(ctx context.Context, data PointsEventData) error {
	err := r.insert(ctx, tablePointsEvents, pointsColumns, []any{data.Delta, data.Balance, data.Reason})
	if err != nil {
		return fmt.Errorf("save points event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPointsEvents(ctx context.Context, opts QueryOpts) ([]PointsEventRecord, error) {
	var out []PointsEventRecord
	err := queryRows(ctx, r.db, selectEvents(tablePointsEvents, opts, pointsColumns...), func(rows *sql.Rows) error {
		var (
			rec PointsEventRecord
			ts  int64
		)
		dest := append(metaDest(&rec.EventMeta, &ts), &rec.Delta, &rec.Balance, &rec.Reason)
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		fillTimestamp(&rec.EventMeta, ts)
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query points events: %w", err)
	}
	return out, nil
}
