package usecase

import (
	"context"
	stderrors "errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/metrics"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type RouteDurationOptions struct {
	// TTL after which an entry is stale. Defaults to domain.DefaultRouteTTL.
	TTL time.Duration
	// LookupTimeout bounds one refresh, all provider calls included.
	LookupTimeout time.Duration
	// MemoryEntries sizes the in-process LRU; zero disables it.
	MemoryEntries int
	Now           func() time.Time
	Tracer        trace.Tracer
}

// RouteDurationUseCase is a read-through cache of route durations in front
// of a routing provider. Only fresh entries are served. Absent and stale
// entries are refreshed with one provider call per travel mode and written
// back whole; a failed refresh is reported as LOOKUP_FAILED and the stored
// row is left as it was.
//
// Concurrent misses for one key share a single refresh within a process.
// Separate processes may still refresh the same key concurrently; the last
// upsert wins and both rows are complete.
type RouteDurationUseCase struct {
	repo     repository.RouteCacheRepository
	provider repository.RoutingProvider
	hot      *lru.Cache[domain.RouteKey, domain.RouteCacheEntry]
	flights  singleflight.Group
	ttl      time.Duration
	timeout  time.Duration
	now      func() time.Time
	tracer   trace.Tracer
	logger   *zap.Logger
}

func NewRouteDurationUseCase(
	repo repository.RouteCacheRepository,
	provider repository.RoutingProvider,
	opts RouteDurationOptions,
	logger *zap.Logger,
) (*RouteDurationUseCase, error) {
	uc := &RouteDurationUseCase{
		repo:     repo,
		provider: provider,
		ttl:      opts.TTL,
		timeout:  opts.LookupTimeout,
		now:      opts.Now,
		tracer:   opts.Tracer,
		logger:   logger,
	}
	if uc.ttl <= 0 {
		uc.ttl = domain.DefaultRouteTTL
	}
	if uc.timeout <= 0 {
		uc.timeout = 10 * time.Second
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.tracer == nil {
		uc.tracer = tracing.Tracer()
	}
	if opts.MemoryEntries > 0 {
		hot, err := lru.New[domain.RouteKey, domain.RouteCacheEntry](opts.MemoryEntries)
		if err != nil {
			return nil, err
		}
		uc.hot = hot
	}
	return uc, nil
}

// Classify reports the state of entry at the current time.
func (uc *RouteDurationUseCase) Classify(entry *domain.RouteCacheEntry) domain.CacheState {
	return domain.ClassifyEntry(entry, uc.now(), uc.ttl)
}

// Resolve returns a fresh entry for the pair, refreshing it from the
// provider when needed.
func (uc *RouteDurationUseCase) Resolve(ctx context.Context, origin, destination domain.Place) (*domain.RouteCacheEntry, error) {
	key := domain.RouteKey{OriginKey: origin.Key, DestinationKey: destination.Key}

	ctx, span := uc.tracer.Start(ctx, "RouteDurationUseCase.Resolve", trace.WithAttributes(
		attribute.String("route.origin", key.OriginKey),
		attribute.String("route.destination", key.DestinationKey),
	))
	defer span.End()

	if uc.hot != nil {
		if cached, ok := uc.hot.Get(key); ok {
			if uc.Classify(&cached) == domain.CacheFresh {
				metrics.RouteCacheLookupsTotal.WithLabelValues(metrics.RouteMemoryHit).Inc()
				span.SetAttributes(attribute.String("route.cache", metrics.RouteMemoryHit))
				return &cached, nil
			}
			uc.hot.Remove(key)
		}
	}

	entry, err := uc.repo.Get(ctx, key)
	if err != nil {
		uc.logger.Error("Failed to read route cache", zap.String("key", key.String()), zap.Error(err))
		tracing.RecordError(span, err)
		return nil, storeError(err)
	}

	state := uc.Classify(entry)
	span.SetAttributes(attribute.String("route.cache_state", state.String()))

	switch state {
	case domain.CacheFresh:
		metrics.RouteCacheLookupsTotal.WithLabelValues(metrics.RouteHit).Inc()
		uc.remember(entry)
		return entry, nil
	case domain.CacheStale:
		metrics.RouteCacheLookupsTotal.WithLabelValues(metrics.RouteStale).Inc()
	default:
		metrics.RouteCacheLookupsTotal.WithLabelValues(metrics.RouteMiss).Inc()
	}

	v, err, shared := uc.flights.Do(key.String(), func() (interface{}, error) {
		return uc.refresh(ctx, origin, destination)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("route.refresh_shared", shared))

	refreshed := *v.(*domain.RouteCacheEntry)
	return &refreshed, nil
}

// Refresh queries the provider for every mode regardless of the stored
// state and writes the result back.
func (uc *RouteDurationUseCase) Refresh(ctx context.Context, origin, destination domain.Place) (*domain.RouteCacheEntry, error) {
	key := domain.RouteKey{OriginKey: origin.Key, DestinationKey: destination.Key}
	v, err, _ := uc.flights.Do(key.String(), func() (interface{}, error) {
		return uc.refresh(ctx, origin, destination)
	})
	if err != nil {
		return nil, err
	}
	refreshed := *v.(*domain.RouteCacheEntry)
	return &refreshed, nil
}

// Invalidate drops the pair from every cache layer.
func (uc *RouteDurationUseCase) Invalidate(ctx context.Context, key domain.RouteKey) error {
	if uc.hot != nil {
		uc.hot.Remove(key)
	}
	if err := uc.repo.Delete(ctx, key); err != nil {
		uc.logger.Error("Failed to delete route", zap.String("key", key.String()), zap.Error(err))
		return storeError(err)
	}
	return nil
}

func (uc *RouteDurationUseCase) refresh(ctx context.Context, origin, destination domain.Place) (*domain.RouteCacheEntry, error) {
	// shared by every caller waiting on this key, so one caller going away
	// must not cancel it for the others
	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.timeout)
	defer cancel()

	lookupCtx, span := uc.tracer.Start(lookupCtx, "RouteDurationUseCase.refresh")
	defer span.End()

	entry := &domain.RouteCacheEntry{
		OriginKey:      origin.Key,
		DestinationKey: destination.Key,
	}

	results := make([]*domain.RouteLookup, len(domain.TravelModes))
	g, gctx := errgroup.WithContext(lookupCtx)
	for i, mode := range domain.TravelModes {
		i, mode := i, mode
		g.Go(func() error {
			lookup, err := uc.provider.Lookup(gctx, origin.Coordinate, destination.Coordinate, mode)
			switch {
			case err == nil:
				results[i] = &lookup
				return nil
			case stderrors.Is(err, domain.ErrNoRoute):
				return nil
			default:
				return errors.ErrLookupFailed.Wrap(err).WithDetails(map[string]interface{}{
					"mode":        string(mode),
					"origin":      origin.Key,
					"destination": destination.Key,
				})
			}
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RouteRefreshesTotal.WithLabelValues("failed").Inc()
		tracing.RecordError(span, err)
		uc.logger.Warn("Route refresh failed",
			zap.String("origin", origin.Key),
			zap.String("destination", destination.Key),
			zap.Error(err),
		)
		return nil, err
	}

	for i, mode := range domain.TravelModes {
		entry.SetLookup(mode, results[i])
	}
	entry.LastUpdated = uc.now().UTC()

	if err := uc.repo.Upsert(lookupCtx, entry); err != nil {
		metrics.RouteRefreshesTotal.WithLabelValues("write_failed").Inc()
		tracing.RecordError(span, err)
		uc.logger.Error("Failed to store route", zap.String("key", entry.Key().String()), zap.Error(err))
		return nil, storeError(err)
	}

	metrics.RouteRefreshesTotal.WithLabelValues("ok").Inc()
	uc.remember(entry)

	uc.logger.Debug("Route refreshed",
		zap.String("origin", origin.Key),
		zap.String("destination", destination.Key),
		zap.Bool("driving", entry.DrivingDurationS != nil),
		zap.Bool("transit", entry.TransitDurationS != nil),
	)

	return entry, nil
}

// storeError keeps the code a repository already assigned and maps anything
// else to CACHE_ERROR.
func storeError(err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.ErrCacheError.Wrap(err)
}

func (uc *RouteDurationUseCase) remember(entry *domain.RouteCacheEntry) {
	if uc.hot != nil {
		uc.hot.Add(entry.Key(), *entry)
	}
}
