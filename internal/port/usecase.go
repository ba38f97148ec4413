package port

import (
	"context"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
)

type UUIDGen func() db.UUID

// VideoProcessor runs the whole pipeline for one video: download, probe,
// segment selection, per-segment extraction and the final status write.
type VideoProcessor interface {
	ProcessVideo(ctx context.Context, id db.UUID) error
}

// CaptionGenerator transcribes the audio track of a video or a short and
// persists the resulting timed captions.
type CaptionGenerator interface {
	GenerateCaptions(ctx context.Context, in GenerateCaptionsInput) error
}
type GenerateCaptionsInput struct {
	VideoID db.UUID
	ShortID *db.UUID
}

// UploadLinkGenerator registers a pending video and returns a presigned
// link to upload its source file.
type UploadLinkGenerator interface {
	GenerateUploadLink(ctx context.Context, in GenerateUploadLinkInput) (GenerateUploadLinkOutput, error)
}
type GenerateUploadLinkInput struct {
	UserID   string
	Title    string
	Filename string
	Settings *model.ProcessingSettings
}
type GenerateUploadLinkOutput struct {
	ID  db.UUID `json:"id"`
	URL string  `json:"url"`
}

// VideoGetter retrieves a video with its shorts and signed access URLs.
type VideoGetter interface {
	GetVideo(ctx context.Context, id db.UUID) (*GetVideoOutput, error)
}
type ShortOutput struct {
	ID              db.UUID       `json:"id"`
	Title           string        `json:"title"`
	URL             string        `json:"url"`
	ThumbnailURL    string        `json:"thumbnail_url,omitempty"`
	DurationSeconds float64       `json:"duration_seconds"`
	StartSeconds    float64       `json:"start_seconds"`
	EndSeconds      float64       `json:"end_seconds"`
	Filter          *model.Filter `json:"filter,omitempty"`
}
type GetVideoOutput struct {
	ValidUntil      time.Time         `json:"valid_until"`
	ID              db.UUID           `json:"id"`
	Title           string            `json:"title"`
	Status          model.VideoStatus `json:"status"`
	DurationSeconds *float64          `json:"duration_seconds"`
	URL             string            `json:"url"`
	ThumbnailURL    string            `json:"thumbnail_url,omitempty"`
	Shorts          []ShortOutput     `json:"shorts"`
}

// VideoDeleter deletes a video, its derived artifacts and all related rows.
type VideoDeleter interface {
	DeleteVideo(ctx context.Context, id db.UUID) error
}

// CaptionLister returns the captions of a video or a short ordered by
// start time.
type CaptionLister interface {
	ListCaptions(ctx context.Context, in GenerateCaptionsInput) ([]CaptionOutput, error)
}
type CaptionOutput struct {
	Text         string  `json:"text"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// StuckRequeuer re-enqueues videos whose run died mid-flight, leaving them
// stranded in PROCESSING.
type StuckRequeuer interface {
	RequeueStuck(ctx context.Context) error
}

// HTTPRenderer mediates between HTTP handlers and the video getter use case.
// It provides caching capabilities and returns both the JSON representation
// of the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	RenderGetVideo(ctx context.Context, getter VideoGetter, id db.UUID) ([]byte, string, error)
}
