package model

import "github.com/clipshift/shorts-ms-go/internal/db"

type Filter string

const (
	FilterNone      Filter = "none"
	FilterBoost     Filter = "boost"
	FilterVintage   Filter = "vintage"
	FilterGrayscale Filter = "grayscale"
	FilterBlur      Filter = "blur"
)

// ProcessingSettings governs one video's pipeline run. A row is created at
// upload time (or defaulted by the pipeline when absent), validated once,
// and never mutated during a run.
type ProcessingSettings struct {
	VideoID              db.UUID `json:"video_id"`
	SegmentDuration      float64 `json:"segment_duration" validate:"min=5,max=60"`
	EnableSceneDetection bool    `json:"enable_scene_detection"`
	EnableCaptions       bool    `json:"enable_captions"`
	EnableFilters        bool    `json:"enable_filters"`
	Filter               Filter  `json:"filter" validate:"oneof=none boost vintage grayscale blur"`
	MinSegmentLength     float64 `json:"min_segment_length" validate:"min=5,max=30"`
	MaxSegments          int     `json:"max_segments" validate:"min=1,max=10"`
}

// DefaultProcessingSettings mirrors the defaults offered at upload time.
func DefaultProcessingSettings(videoID db.UUID) *ProcessingSettings {
	return &ProcessingSettings{
		VideoID:              videoID,
		SegmentDuration:      15,
		EnableSceneDetection: true,
		EnableCaptions:       false,
		EnableFilters:        false,
		Filter:               FilterNone,
		MinSegmentLength:     10,
		MaxSegments:          5,
	}
}
