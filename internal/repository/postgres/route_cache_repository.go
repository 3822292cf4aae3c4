package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"go.uber.org/zap"
)

type routeCacheRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRouteCacheRepository(db *DB) repository.RouteCacheRepository {
	return &routeCacheRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *routeCacheRepository) Get(ctx context.Context, key domain.RouteKey) (*domain.RouteCacheEntry, error) {
	query := `
		SELECT origin_key, destination_key,
			driving_duration_s, driving_distance_m,
			transit_duration_s, transit_distance_m,
			last_updated
		FROM route_cache
		WHERE origin_key = $1 AND destination_key = $2
	`

	var entry domain.RouteCacheEntry
	err := r.db.GetContext(ctx, &entry, query, key.OriginKey, key.DestinationKey)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get route cache entry",
			zap.String("key", key.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	entry.LastUpdated = entry.LastUpdated.UTC()
	return &entry, nil
}

// Upsert writes every column of the row, so a concurrent reader sees either
// the old entry or the new one, never a mix of the two.
func (r *routeCacheRepository) Upsert(ctx context.Context, entry *domain.RouteCacheEntry) error {
	query := `
		INSERT INTO route_cache (
			origin_key, destination_key,
			driving_duration_s, driving_distance_m,
			transit_duration_s, transit_distance_m,
			last_updated
		) VALUES (
			:origin_key, :destination_key,
			:driving_duration_s, :driving_distance_m,
			:transit_duration_s, :transit_distance_m,
			:last_updated
		)
		ON CONFLICT (origin_key, destination_key) DO UPDATE SET
			driving_duration_s = EXCLUDED.driving_duration_s,
			driving_distance_m = EXCLUDED.driving_distance_m,
			transit_duration_s = EXCLUDED.transit_duration_s,
			transit_distance_m = EXCLUDED.transit_distance_m,
			last_updated = EXCLUDED.last_updated
	`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		r.logger.Error("Failed to upsert route cache entry",
			zap.String("key", entry.Key().String()),
			zap.Error(err))
		return errors.ErrDatabaseError.Wrap(err)
	}
	return nil
}

func (r *routeCacheRepository) Delete(ctx context.Context, key domain.RouteKey) error {
	query := `DELETE FROM route_cache WHERE origin_key = $1 AND destination_key = $2`

	if _, err := r.db.ExecContext(ctx, query, key.OriginKey, key.DestinationKey); err != nil {
		r.logger.Error("Failed to delete route cache entry",
			zap.String("key", key.String()),
			zap.Error(err))
		return errors.ErrDatabaseError.Wrap(err)
	}
	return nil
}
