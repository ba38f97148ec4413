package model

import (
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
)

// Short is a derived clip cut from a segment of its parent video.
// Rows are insert-once: a Short is never updated after creation and is
// deleted only as part of its video's cascade.
type Short struct {
	ID              db.UUID   `json:"id"`
	VideoID         db.UUID   `json:"video_id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	ObjectKey       string    `json:"object_key"`
	ThumbnailKey    *string   `json:"thumbnail_key"`
	DurationSeconds float64   `json:"duration_seconds"`
	StartSeconds    float64   `json:"start_seconds"`
	EndSeconds      float64   `json:"end_seconds"`
	Filter          *Filter   `json:"filter"`
	CreatedAt       time.Time `json:"created_at"`
}
