package postgres

import (
	"context"

	"github.com/finnbusse/grabbe-cms/internal/domain/setting"
)

type SettingRepository struct {
	db *DB
}

func NewSettingRepository(db *DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) ListBySection(ctx context.Context, section setting.Section) ([]*setting.Setting, error) {
	query := `
		SELECT key, section, value, updated_at
		FROM site_settings
		WHERE section = $1
		ORDER BY key
	`

	rows, err := r.db.Pool.Query(ctx, query, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*setting.Setting
	for rows.Next() {
		s := &setting.Setting{}
		if err := rows.Scan(&s.Key, &s.Section, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *SettingRepository) Upsert(ctx context.Context, s setting.Setting) error {
	query := `
		INSERT INTO site_settings (key, section, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE SET section = $2, value = $3, updated_at = NOW()
	`

	_, err := r.db.Pool.Exec(ctx, query, s.Key, s.Section, s.Value)
	return err
}
