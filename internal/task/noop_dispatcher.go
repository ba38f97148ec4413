package task

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueProcessVideo(ctx context.Context, id db.UUID) error {
	return nil
}

func (d *NoopDispatcher) EnqueueGenerateCaptions(ctx context.Context, videoID db.UUID, shortID *db.UUID) error {
	return nil
}
