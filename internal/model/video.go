package model

import (
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
)

type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "PENDING"
	VideoStatusProcessing VideoStatus = "PROCESSING"
	VideoStatusCompleted  VideoStatus = "COMPLETED"
	VideoStatusFailed     VideoStatus = "FAILED"
)

// Video is a source media asset uploaded by a user. Its status and duration
// are only ever mutated by the processing pipeline.
type Video struct {
	ID              db.UUID     `json:"id"`
	UserID          string      `json:"user_id"`
	Title           string      `json:"title"`
	ObjectKey       string      `json:"object_key"`
	Status          VideoStatus `json:"status"`
	DurationSeconds *float64    `json:"duration_seconds"`
	ThumbnailKey    *string     `json:"thumbnail_key"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
