package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	// SettingTheme holds "dark" or "light".
	SettingTheme = "theme"
	// DefaultTheme is used until the user picks one.
	DefaultTheme = "dark"
)

type settingsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	q, args := builder.Select("value").
		From(builder.Table(tableSettings)).
		Where(entsql.EQ("key", key)).
		Query()

	var v string
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	q, args := builder.Insert(tableSettings).
		Columns("key", "value", "updated_at").
		Values(key, value, r.now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) Theme(ctx context.Context) (string, error) {
	v, ok, err := r.Get(ctx, SettingTheme)
	if err != nil || !ok {
		return DefaultTheme, err
	}
	return v, nil
}

func (r *settingsRepo) SetTheme(ctx context.Context, theme string) error {
	return r.Set(ctx, SettingTheme, theme)
}
