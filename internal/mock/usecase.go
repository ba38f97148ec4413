package mock

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

// VideoGetter implements port.VideoGetter for tests.
type VideoGetter struct {
	Out    *port.GetVideoOutput
	Err    error
	Called bool
}

func (m *VideoGetter) GetVideo(ctx context.Context, id db.UUID) (*port.GetVideoOutput, error) {
	m.Called = true
	return m.Out, m.Err
}

// VideoDeleter implements port.VideoDeleter for tests.
type VideoDeleter struct {
	Err    error
	Called bool
	ID     db.UUID
}

func (m *VideoDeleter) DeleteVideo(ctx context.Context, id db.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// VideoProcessor implements port.VideoProcessor for tests.
type VideoProcessor struct {
	Err    error
	Called bool
	ID     db.UUID
}

func (m *VideoProcessor) ProcessVideo(ctx context.Context, id db.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// CaptionGenerator implements port.CaptionGenerator for tests.
type CaptionGenerator struct {
	Err    error
	Called bool
	In     port.GenerateCaptionsInput
}

func (m *CaptionGenerator) GenerateCaptions(ctx context.Context, in port.GenerateCaptionsInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// UploadLinkGenerator implements port.UploadLinkGenerator for tests.
type UploadLinkGenerator struct {
	Out    port.GenerateUploadLinkOutput
	Err    error
	Called bool
	In     port.GenerateUploadLinkInput
}

func (m *UploadLinkGenerator) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// CaptionLister implements port.CaptionLister for tests.
type CaptionLister struct {
	Out    []port.CaptionOutput
	Err    error
	Called bool
	In     port.GenerateCaptionsInput
}

func (m *CaptionLister) ListCaptions(ctx context.Context, in port.GenerateCaptionsInput) ([]port.CaptionOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}
