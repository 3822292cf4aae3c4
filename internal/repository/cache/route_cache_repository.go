package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"go.uber.org/zap"
)

const routeKeyPrefix = "route:"

type routeCacheRepository struct {
	client    *redis.Client
	retention time.Duration
	logger    *zap.Logger
}

// NewRouteCacheRepository stores route entries as JSON strings. Staleness
// is decided from LastUpdated, not by redis expiry; retention only bounds
// how long an abandoned key lingers. Zero keeps keys forever.
func NewRouteCacheRepository(r *Redis, retention time.Duration) repository.RouteCacheRepository {
	return &routeCacheRepository{
		client:    r.Client(),
		retention: retention,
		logger:    r.logger,
	}
}

func routeKey(key domain.RouteKey) string {
	return routeKeyPrefix + key.String()
}

func (r *routeCacheRepository) Get(ctx context.Context, key domain.RouteKey) (*domain.RouteCacheEntry, error) {
	data, err := r.client.Get(ctx, routeKey(key)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get route from cache", zap.String("key", key.String()), zap.Error(err))
		return nil, errors.ErrCacheError.Wrap(err)
	}

	var entry domain.RouteCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		r.logger.Error("Failed to unmarshal route entry", zap.String("key", key.String()), zap.Error(err))
		return nil, errors.ErrCacheError.Wrap(fmt.Errorf("unmarshal route entry: %w", err))
	}
	return &entry, nil
}

// Upsert overwrites the key with a single SET, so readers never observe a
// partially written entry.
func (r *routeCacheRepository) Upsert(ctx context.Context, entry *domain.RouteCacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.ErrCacheError.Wrap(fmt.Errorf("marshal route entry: %w", err))
	}

	if err := r.client.Set(ctx, routeKey(entry.Key()), data, r.retention).Err(); err != nil {
		r.logger.Error("Failed to store route entry", zap.String("key", entry.Key().String()), zap.Error(err))
		return errors.ErrCacheError.Wrap(err)
	}

	r.logger.Debug("Route entry stored", zap.String("key", entry.Key().String()))
	return nil
}

func (r *routeCacheRepository) Delete(ctx context.Context, key domain.RouteKey) error {
	if err := r.client.Del(ctx, routeKey(key)).Err(); err != nil {
		r.logger.Error("Failed to delete route entry", zap.String("key", key.String()), zap.Error(err))
		return errors.ErrCacheError.Wrap(err)
	}
	return nil
}
