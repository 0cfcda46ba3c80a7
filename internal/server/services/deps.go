package services

import (
	"context"

	"github.com/dmitrijs2005/filemeta/internal/logging"
	"github.com/dmitrijs2005/filemeta/internal/server/events"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
)

// EventPublisher is implemented by events.AMQPPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// FileCache is implemented by cache.RedisFileCache. Get returns an error on
// a miss.
type FileCache interface {
	Get(ctx context.Context, id string) (*models.File, error)
	Set(ctx context.Context, f *models.File) error
	Invalidate(ctx context.Context, ids ...string) error
}

// BlobAborter is implemented by blobstore.S3Store.
type BlobAborter interface {
	AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error
}

// publish sends e and only logs failures; events never fail a request.
func publish(ctx context.Context, p EventPublisher, logger logging.Logger, e events.Event) {
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn(ctx, "failed to publish event", "type", e.Type, "error", err)
	}
}
