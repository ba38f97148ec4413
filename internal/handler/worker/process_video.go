package worker

import (
	"context"
	"errors"
	"log"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/clipshift/shorts-ms-go/internal/task"
	"github.com/clipshift/shorts-ms-go/internal/usecase/video"
	"github.com/google/uuid"
)

// ProcessVideoHandler handles a process-video task.
// It converts the incoming task payload to the input expected by
// the port.VideoProcessor service and delegates the call.
func ProcessVideoHandler(ctx context.Context, p task.ProcessVideoPayload, svc port.VideoProcessor) error {
	id, err := uuid.Parse(p.VideoID)
	if err != nil {
		log.Printf("❌  Invalid video ID %q: %v", p.VideoID, err)
		return err
	}

	if err := svc.ProcessVideo(ctx, db.UUID(id)); err != nil {
		if errors.Is(err, video.ErrRunInProgress) {
			// another worker holds the run lock; retrying would only collide again
			log.Printf("⚠️  Run already in flight for video #%s, dropping task", id)
			return nil
		}
		log.Printf("❌  Failed to process video #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Successfully processed video #%s", id)
	return nil
}
