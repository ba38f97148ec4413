package port

import (
	"context"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
)

// VideoRepository defines persistence operations for source videos.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, ID db.UUID) (*model.Video, error)
	Update(ctx context.Context, video *model.Video) error
	// TransitionStatus atomically moves the video from one of the given
	// statuses to the target status. It reports false when the video was in
	// none of them, which callers use as a per-video run lock.
	TransitionStatus(ctx context.Context, ID db.UUID, from []model.VideoStatus, to model.VideoStatus) (bool, error)
	ListProcessingBefore(ctx context.Context, before time.Time) ([]db.UUID, error)
	// DeleteCascade removes the video with its settings, shorts, captions
	// and recorded segment failures in a single transaction.
	DeleteCascade(ctx context.Context, ID db.UUID) error
}

// ShortRepository defines persistence operations for derived shorts.
type ShortRepository interface {
	Create(ctx context.Context, short *model.Short) error
	GetByID(ctx context.Context, ID db.UUID) (*model.Short, error)
	ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.Short, error)
}

// SettingsRepository defines persistence operations for per-video
// processing settings.
type SettingsRepository interface {
	Create(ctx context.Context, settings *model.ProcessingSettings) error
	GetByVideoID(ctx context.Context, videoID db.UUID) (*model.ProcessingSettings, error)
}

// CaptionRepository defines persistence operations for timed captions.
type CaptionRepository interface {
	Create(ctx context.Context, caption *model.Caption) error
	ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.Caption, error)
	ListByShortID(ctx context.Context, shortID db.UUID) ([]model.Caption, error)
}

// SegmentFailureRepository records skipped segments for observability.
type SegmentFailureRepository interface {
	Create(ctx context.Context, failure *model.SegmentFailure) error
	ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.SegmentFailure, error)
}
