package usecase

import (
	"context"
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
	"github.com/samali323/carbonemissioncalc-sub000/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RouteStore is the route cache as seen by the HTTP surface.
type RouteStore interface {
	RouteResolver
	Invalidate(ctx context.Context, key domain.RouteKey) error
}

// RouteUseCase serves cached route durations and queues pairs for warming.
type RouteUseCase struct {
	locations *LocationResolver
	routes    RouteStore
	streams   repository.StreamRepository
	now       func() time.Time
	logger    *zap.Logger
}

// NewRouteUseCase builds the use case. With a nil streams repository warm
// requests are resolved inline instead of being queued for the worker.
func NewRouteUseCase(
	ref *refdata.ReferenceData,
	routes RouteStore,
	streams repository.StreamRepository,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		locations: NewLocationResolver(ref),
		routes:    routes,
		streams:   streams,
		now:       time.Now,
		logger:    logger,
	}
}

func (uc *RouteUseCase) places(pair dto.RoutePair) (domain.Place, domain.Place, error) {
	origin, err := uc.locations.Resolve(pair.Origin, "origin")
	if err != nil {
		return domain.Place{}, domain.Place{}, err
	}
	destination, err := uc.locations.Resolve(pair.Destination, "destination")
	if err != nil {
		return domain.Place{}, domain.Place{}, err
	}
	return origin, destination, nil
}

func (uc *RouteUseCase) GetRoute(ctx context.Context, pair dto.RoutePair) (*dto.RouteResponse, error) {
	origin, destination, err := uc.places(pair)
	if err != nil {
		return nil, err
	}

	entry, err := uc.routes.Resolve(ctx, origin, destination)
	if err != nil {
		return nil, err
	}
	return dto.NewRouteResponse(origin, destination, entry), nil
}

func (uc *RouteUseCase) InvalidateRoute(ctx context.Context, pair dto.RoutePair) error {
	origin, destination, err := uc.places(pair)
	if err != nil {
		return err
	}
	return uc.routes.Invalidate(ctx, domain.RouteKey{
		OriginKey:      origin.Key,
		DestinationKey: destination.Key,
	})
}

// WarmRoutes validates every pair before queuing any of them, so a bad
// pair rejects the whole batch.
func (uc *RouteUseCase) WarmRoutes(ctx context.Context, req dto.WarmRoutesRequest) (*dto.WarmRoutesResponse, error) {
	events := make([]domain.RouteWarmEvent, 0, len(req.Pairs))
	for i, pair := range req.Pairs {
		origin, destination, err := uc.places(pair)
		if err != nil {
			if appErr, ok := errors.As(err); ok {
				return nil, appErr.WithDetails(map[string]interface{}{"pair": i})
			}
			return nil, err
		}
		events = append(events, domain.NewRouteWarmEvent(origin, destination, uc.now()))
	}

	if uc.streams == nil {
		if err := uc.warmInline(ctx, events); err != nil {
			return nil, err
		}
	} else {
		for _, event := range events {
			if err := uc.streams.PublishToStream(ctx, domain.StreamRouteWarm, event); err != nil {
				uc.logger.Error("Failed to queue route warm event",
					zap.String("request_id", event.RequestID.String()),
					zap.Error(err))
				return nil, errors.ErrCacheError.Wrap(err)
			}
		}
	}

	resp := &dto.WarmRoutesResponse{
		Accepted:   len(events),
		RequestIDs: make([]string, len(events)),
	}
	for i, event := range events {
		resp.RequestIDs[i] = event.RequestID.String()
	}

	uc.logger.Info("Route warm accepted",
		zap.Int("pairs", len(events)),
		zap.Bool("queued", uc.streams != nil))
	return resp, nil
}

const inlineWarmConcurrency = 4

func (uc *RouteUseCase) warmInline(ctx context.Context, events []domain.RouteWarmEvent) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inlineWarmConcurrency)
	for _, event := range events {
		event := event
		g.Go(func() error {
			_, err := uc.routes.Resolve(gctx, event.Origin, event.Destination)
			return err
		})
	}
	return g.Wait()
}
