package repository

import (
	"context"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
)

type StreamRepository interface {
	// ConsumeStream reads messages for consumer until ctx is done.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup is idempotent.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream stores data as JSON under the "data" field.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
