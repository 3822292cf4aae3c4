package routewarm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/metrics"
	"github.com/samali323/carbonemissioncalc-sub000/internal/worker"
	"go.uber.org/zap"
)

const workerName = "route-warm"

const (
	statusOK       = "ok"
	statusInvalid  = "invalid"
	statusRejected = "rejected"
	statusFailed   = "failed"
)

// Resolver makes sure a route pair is cached and fresh.
type Resolver interface {
	Resolve(ctx context.Context, origin, destination domain.Place) (*domain.RouteCacheEntry, error)
}

type Options struct {
	ConsumerGroup string
	// ConsumerName defaults to hostname-pid.
	ConsumerName string
	// MaxRetries is how many times a LOOKUP_FAILED pair is retried before
	// it is acked and dropped.
	MaxRetries int
	RetryDelay time.Duration
}

// Worker resolves route pairs queued on domain.StreamRouteWarm.
type Worker struct {
	*worker.BaseWorker
	streams      repository.StreamRepository
	routes       Resolver
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
}

func NewWorker(
	streams repository.StreamRepository,
	routes Resolver,
	opts Options,
	logger *zap.Logger,
) *Worker {
	consumerName := opts.ConsumerName
	if consumerName == "" {
		hostname, _ := os.Hostname()
		consumerName = fmt.Sprintf("%s-%d", hostname, os.Getpid())
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	return &Worker{
		BaseWorker:   worker.NewBaseWorker(workerName, opts.ConsumerGroup, logger),
		streams:      streams,
		routes:       routes,
		consumerName: consumerName,
		maxRetries:   opts.MaxRetries,
		retryDelay:   opts.RetryDelay,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting route warm worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streams.CreateConsumerGroup(ctx, domain.StreamRouteWarm, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	runCtx, cancel := w.RunContext(ctx)
	defer cancel()

	messages, err := w.streams.ConsumeStream(runCtx, domain.StreamRouteWarm, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for msg := range messages {
		w.handle(runCtx, msg)
	}

	logger.Info("Route warm worker stopped")
	return nil
}

func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.RouteWarmEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || !event.Validate() {
		logger.Warn("Dropping malformed route warm event", zap.Error(err))
		w.ack(ctx, msg.ID, statusInvalid)
		return
	}
	logger = logger.With(
		zap.String("request_id", event.RequestID.String()),
		zap.String("origin", event.Origin.Key),
		zap.String("destination", event.Destination.Key))

	err := w.resolve(ctx, event)
	switch {
	case err == nil:
		logger.Debug("Route warmed")
		w.ack(ctx, msg.ID, statusOK)
	case ctx.Err() != nil:
		// Left unacked in the group's pending list.
		logger.Info("Route warm interrupted by shutdown")
	case errors.IsKind(err, errors.KindInput):
		logger.Warn("Route warm rejected", zap.Error(err))
		w.ack(ctx, msg.ID, statusRejected)
	default:
		logger.Error("Route warm failed, giving up", zap.Error(err))
		w.ack(ctx, msg.ID, statusFailed)
	}
}

// resolve retries lookup failures with doubling delays.
func (w *Worker) resolve(ctx context.Context, event domain.RouteWarmEvent) error {
	delay := w.retryDelay
	for attempt := 0; ; attempt++ {
		_, err := w.routes.Resolve(ctx, event.Origin, event.Destination)
		if err == nil || !errors.IsKind(err, errors.KindLookup) || attempt >= w.maxRetries {
			return err
		}

		w.Logger().Warn("Route lookup failed, retrying",
			zap.String("request_id", event.RequestID.String()),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
}

func (w *Worker) ack(ctx context.Context, id, status string) {
	metrics.WorkerMessagesTotal.WithLabelValues(workerName, status).Inc()
	// Handled messages are acked even while shutting down.
	ackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := w.streams.AckMessage(ackCtx, domain.StreamRouteWarm, w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack route warm event",
			zap.String("message_id", id),
			zap.Error(err))
	}
}
