package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/clipshift/shorts-ms-go/internal/api_context"
	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
	guuid "github.com/google/uuid"
)

// ListCaptionsHandler returns the captions of a video, or of one of its
// shorts when the short_id query parameter is supplied.
func ListCaptionsHandler(svc port.CaptionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var shortID *db.UUID
		if raw := r.URL.Query().Get("short_id"); raw != "" {
			parsed, err := guuid.Parse(raw)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("short_id %q is not a valid UUID", raw), nil)
				return
			}
			sid := db.UUID(parsed)
			shortID = &sid
		}

		captions, err := svc.ListCaptions(r.Context(), port.GenerateCaptionsInput{VideoID: id, ShortID: shortID})
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list captions", err)
			return
		}

		RespondJSON(w, http.StatusOK, captions)
		log.Printf("✅  Returned %d captions for video #%s", len(captions), id)
	}
}
