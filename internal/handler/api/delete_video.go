package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/clipshift/shorts-ms-go/internal/api_context"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/clipshift/shorts-ms-go/internal/usecase/video"
)

// DeleteVideoHandler deletes a video, its shorts and all stored artifacts.
func DeleteVideoHandler(svc port.VideoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteVideo(r.Context(), id); err != nil {
			if errors.Is(err, video.ErrVideoNotFound) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Failed to delete video", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted video #%s", id)
	}
}
