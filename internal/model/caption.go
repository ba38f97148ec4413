package model

import (
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
)

// Caption is a timed text span attached to either a video or a short
// (mutually exclusive owner). Read-only after creation.
type Caption struct {
	ID           db.UUID   `json:"id"`
	VideoID      *db.UUID  `json:"video_id"`
	ShortID      *db.UUID  `json:"short_id"`
	Text         string    `json:"text"`
	StartSeconds float64   `json:"start_seconds"`
	EndSeconds   float64   `json:"end_seconds"`
	CreatedAt    time.Time `json:"created_at"`
}
