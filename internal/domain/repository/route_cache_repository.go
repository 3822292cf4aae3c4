package repository

import (
	"context"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
)

// RouteCacheRepository persists resolved route pairs, one row per key.
type RouteCacheRepository interface {
	// Get returns nil, nil when the pair has never been resolved.
	Get(ctx context.Context, key domain.RouteKey) (*domain.RouteCacheEntry, error)

	// Upsert replaces the whole row for the entry's key in one statement.
	Upsert(ctx context.Context, entry *domain.RouteCacheEntry) error

	// Delete removes the row; deleting a missing row is not an error.
	Delete(ctx context.Context, key domain.RouteKey) error
}
