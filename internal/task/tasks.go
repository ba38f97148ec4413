package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeProcessVideo     = "video:process"
	TypeGenerateCaptions = "video:captions"
)

type ProcessVideoPayload struct {
	VideoID string `json:"video_id"`
}

type GenerateCaptionsPayload struct {
	VideoID string  `json:"video_id"`
	ShortID *string `json:"short_id,omitempty"`
}

// NewProcessVideoTask creates an Asynq task for running the pipeline on a video by ID.
func NewProcessVideoTask(videoID string) (*asynq.Task, error) {
	p := ProcessVideoPayload{VideoID: videoID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-video payload: %w", err)
	}
	return asynq.NewTask(TypeProcessVideo, data), nil
}

// ParseProcessVideoPayload parses the task payload to ProcessVideoPayload.
func ParseProcessVideoPayload(t *asynq.Task) (ProcessVideoPayload, error) {
	var p ProcessVideoPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ProcessVideoPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewGenerateCaptionsTask creates an Asynq task for transcribing a video or one of its shorts.
func NewGenerateCaptionsTask(videoID string, shortID *string) (*asynq.Task, error) {
	p := GenerateCaptionsPayload{VideoID: videoID, ShortID: shortID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal generate-captions payload: %w", err)
	}
	return asynq.NewTask(TypeGenerateCaptions, data), nil
}

// ParseGenerateCaptionsPayload parses the task payload to GenerateCaptionsPayload.
func ParseGenerateCaptionsPayload(t *asynq.Task) (GenerateCaptionsPayload, error) {
	var p GenerateCaptionsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return GenerateCaptionsPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
