package worker

import (
	"context"
	"log"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/clipshift/shorts-ms-go/internal/task"
	"github.com/google/uuid"
)

// GenerateCaptionsHandler handles a generate-captions task.
func GenerateCaptionsHandler(ctx context.Context, p task.GenerateCaptionsPayload, svc port.CaptionGenerator) error {
	videoID, err := uuid.Parse(p.VideoID)
	if err != nil {
		log.Printf("❌  Invalid video ID %q: %v", p.VideoID, err)
		return err
	}

	in := port.GenerateCaptionsInput{VideoID: db.UUID(videoID)}
	if p.ShortID != nil {
		shortID, err := uuid.Parse(*p.ShortID)
		if err != nil {
			log.Printf("❌  Invalid short ID %q: %v", *p.ShortID, err)
			return err
		}
		sid := db.UUID(shortID)
		in.ShortID = &sid
	}

	if err := svc.GenerateCaptions(ctx, in); err != nil {
		log.Printf("❌  Failed to generate captions for video #%s: %v", videoID, err)
		return err
	}

	log.Printf("✅  Successfully generated captions for video #%s", videoID)
	return nil
}
