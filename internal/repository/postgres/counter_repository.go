package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/archive-alert/internal/domain/repository"
	apperrors "github.com/archive-alert/internal/pkg/errors"
	"go.uber.org/zap"
)

const counterSchema = `
CREATE TABLE IF NOT EXISTS aoi_scene_counts (
	aoi_id      TEXT PRIMARY KEY,
	scene_count INTEGER NOT NULL CHECK (scene_count >= 0),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type counterRow struct {
	AOIID      string `db:"aoi_id"`
	SceneCount int    `db:"scene_count"`
}

type counterRepository struct {
	db *DB
}

// NewCounterRepository создает хранилище счётчиков в PostgreSQL
func NewCounterRepository(db *DB) repository.CounterRepository {
	return &counterRepository{db: db}
}

// Migrate creates the counter table when it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, counterSchema); err != nil {
		return fmt.Errorf("failed to create aoi_scene_counts: %w", err)
	}
	db.logger.Debug("Counter schema ready")
	return nil
}

func (r *counterRepository) Get(ctx context.Context, aoi string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT scene_count FROM aoi_scene_counts WHERE aoi_id = $1`, aoi)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get count for %q: %w", aoi, apperrors.ErrAOINotRegistered)
	}
	if err != nil {
		r.db.logger.Error("Failed to get scene count", zap.String("aoi", aoi), zap.Error(err))
		return 0, fmt.Errorf("failed to get scene count: %w", err)
	}

	return count, nil
}

func (r *counterRepository) Set(ctx context.Context, aoi string, count int) error {
	if count < 0 {
		return fmt.Errorf("set count %d for %q: %w", count, aoi, apperrors.ErrNegativeCount)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO aoi_scene_counts (aoi_id, scene_count, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (aoi_id) DO UPDATE
		SET scene_count = EXCLUDED.scene_count, updated_at = now()`,
		aoi, count)
	if err != nil {
		r.db.logger.Error("Failed to set scene count", zap.String("aoi", aoi), zap.Error(err))
		return fmt.Errorf("failed to set scene count: %w", err)
	}

	return nil
}

func (r *counterRepository) Ensure(ctx context.Context, aoi string) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO aoi_scene_counts (aoi_id, scene_count)
		VALUES ($1, 0)
		ON CONFLICT (aoi_id) DO NOTHING`,
		aoi)
	if err != nil {
		return fmt.Errorf("failed to register aoi: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		r.db.logger.Info("AOI added to counter table", zap.String("aoi", aoi))
	}
	return nil
}

func (r *counterRepository) All(ctx context.Context) (map[string]int, error) {
	var rows []counterRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT aoi_id, scene_count FROM aoi_scene_counts ORDER BY aoi_id`); err != nil {
		return nil, fmt.Errorf("failed to list scene counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.AOIID] = row.SceneCount
	}
	return counts, nil
}
