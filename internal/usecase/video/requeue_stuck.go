package video

import (
	"context"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type stuckRequeuerSrv struct {
	videos port.VideoRepository
	tasks  port.TaskDispatcher
}

// compile-time check: *stuckRequeuerSrv must satisfy port.StuckRequeuer
var _ port.StuckRequeuer = (*stuckRequeuerSrv)(nil)

// NewStuckRequeuer constructs a StuckRequeuer implementation.
func NewStuckRequeuer(videos port.VideoRepository, tasks port.TaskDispatcher) port.StuckRequeuer {
	return &stuckRequeuerSrv{videos: videos, tasks: tasks}
}

// RequeueStuck finds videos stranded in PROCESSING by a dead worker, resets
// them to PENDING and enqueues a fresh run for each.
func (s *stuckRequeuerSrv) RequeueStuck(ctx context.Context) error {
	cutoff := time.Now().Add(-stuckRunAge)
	ids, err := s.videos.ListProcessingBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no stuck videos found")
	}

	for _, id := range ids {
		reset, err := s.videos.TransitionStatus(ctx, id,
			[]model.VideoStatus{model.VideoStatusProcessing},
			model.VideoStatusPending)
		if err != nil {
			logger.Warnf(ctx, "could not reset stuck video #%s: %v", id, err)
			continue
		}
		if !reset {
			continue // finished in the meantime
		}
		logger.Infof(ctx, "requeueing stuck video #%s", id)
		if err := s.tasks.EnqueueProcessVideo(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue run for video #%s: %v", id, err)
		}
	}
	return nil
}
