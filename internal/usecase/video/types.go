package video

// VideoSegment is one selected time window of the source. It only lives for
// the duration of a pipeline run; shorts are what gets persisted.
type VideoSegment struct {
	Start    float64
	Duration float64
	// Score ranks candidates before truncation to the configured maximum.
	// It is never stored.
	Score float64
}
