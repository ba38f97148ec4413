package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/clipshift/shorts-ms-go/internal/api_context"
	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/port"
	guuid "github.com/google/uuid"
)

type GenerateCaptionsRequest struct {
	ShortID *string `json:"short_id"`
}

type GenerateCaptionsResponse struct {
	Started bool `json:"started"`
}

// GenerateCaptionsHandler enqueues a transcription task for the video, or
// for one of its shorts when short_id is supplied in the body.
func GenerateCaptionsHandler(tasks port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req GenerateCaptionsRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
				return
			}
		}

		var shortID *db.UUID
		if req.ShortID != nil {
			parsed, err := guuid.Parse(*req.ShortID)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("short_id %q is not a valid UUID", *req.ShortID), nil)
				return
			}
			sid := db.UUID(parsed)
			shortID = &sid
		}

		if err := tasks.EnqueueGenerateCaptions(r.Context(), id, shortID); err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not start caption generation", err)
			return
		}

		RespondJSON(w, http.StatusAccepted, GenerateCaptionsResponse{Started: true})
		logger.Infof(r.Context(), "🚀  Enqueued caption generation for video #%s", id)
	}
}
