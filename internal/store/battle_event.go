package store

import (
	"context"
	"database/sql"
	"fmt"
)

var battleColumns = []string{
	"encounter_id", "result", "questions", "armor", "armor_absorbed", "player_health", "boss_health",
}

func (r *eventRepo) AppendBattleEvent(ctx context.Context, data BattleEventData) error {
	err := r.insert(ctx, tableBattleEvents, battleColumns, []any{
		data.EncounterID,
		data.Result,
		data.Questions,
		data.Armor,
		data.ArmorAbsorbed,
		data.PlayerHealth,
		data.BossHealth,
	})
	if err != nil {
		return fmt.Errorf("save battle event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryBattleEvents(ctx context.Context, opts QueryOpts) ([]BattleEventRecord, error) {
	var out []BattleEventRecord
	err := queryRows(ctx, r.db, selectEvents(tableBattleEvents, opts, battleColumns...), func(rows *sql.Rows) error {
		var (
			rec BattleEventRecord
			ts  int64
		)
		dest := append(metaDest(&rec.EventMeta, &ts),
			&rec.EncounterID, &rec.Result, &rec.Questions, &rec.Armor,
			&rec.ArmorAbsorbed, &rec.PlayerHealth, &rec.BossHealth)
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		fillTimestamp(&rec.EventMeta, ts)
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query battle events: %w", err)
	}
	return out, nil
}
