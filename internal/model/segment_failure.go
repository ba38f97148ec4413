package model

import (
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
)

// SegmentFailure records why one selected segment was skipped during a run.
// The run itself carries on; these rows exist purely for diagnosis, since
// the final video status alone cannot tell a partial success from a full one.
type SegmentFailure struct {
	ID           db.UUID   `json:"id"`
	VideoID      db.UUID   `json:"video_id"`
	SegmentIndex int       `json:"segment_index"`
	Stage        string    `json:"stage"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}
