package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/clipshift/shorts-ms-go/internal/api_context"
	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/clipshift/shorts-ms-go/internal/usecase/video"
)

type ProcessVideoResponse struct {
	Started bool `json:"started"`
}

// ProcessVideoHandler enqueues a pipeline run for the video and acknowledges
// immediately; the outcome is only observable through status polling.
func ProcessVideoHandler(videos port.VideoRepository, tasks port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if _, err := videos.GetByID(r.Context(), id); err != nil {
			if errors.Is(err, video.ErrVideoNotFound) || errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not load video", err)
			return
		}

		if err := tasks.EnqueueProcessVideo(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not start processing", err)
			return
		}

		RespondJSON(w, http.StatusAccepted, ProcessVideoResponse{Started: true})
		logger.Infof(r.Context(), "🚀  Enqueued processing run for video #%s", id)
	}
}
