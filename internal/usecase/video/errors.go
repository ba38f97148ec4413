package video

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	// ErrVideoNotFound is returned when no video row exists for the given ID.
	ErrVideoNotFound = errors.New("video not found")
	// ErrRunInProgress is returned when the per-video run lock rejects a
	// duplicate processing trigger.
	ErrRunInProgress = errors.New("processing run already in flight for this video")
	// ErrNoSegments is the fatal outcome of a run whose selection produced
	// nothing, or whose every segment failed.
	ErrNoSegments = errors.New("no segments could be processed")
)
