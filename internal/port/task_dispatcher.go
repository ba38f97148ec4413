package port

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/db"
)

// TaskDispatcher enqueues asynchronous tasks related to video processing.
type TaskDispatcher interface {
	EnqueueProcessVideo(ctx context.Context, id db.UUID) error
	EnqueueGenerateCaptions(ctx context.Context, videoID db.UUID, shortID *db.UUID) error
}
