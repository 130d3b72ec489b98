package store

import (
	"context"
	"database/sql"
	"fmt"
)

var rewardColumns = []string{"chest", "outcome", "kind", "stake", "net_value", "claimed"}

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	err := r.insert(ctx, tableRewardEvents, rewardColumns, []any{
		data.Chest, data.Outcome, data.Kind, data.Stake, data.NetValue, data.Claimed,
	})
	if err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error) {
	var out []RewardEventRecord
	err := queryRows(ctx, r.db, selectEvents(tableRewardEvents, opts, rewardColumns...), func(rows *sql.Rows) error {
		var (
			rec RewardEventRecord
			ts  int64
		)
		dest := append(metaDest(&rec.EventMeta, &ts),
			&rec.Chest, &rec.Outcome, &rec.Kind, &rec.Stake, &rec.NetValue, &rec.Claimed)
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		fillTimestamp(&rec.EventMeta, ts)
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	return out, nil
}
