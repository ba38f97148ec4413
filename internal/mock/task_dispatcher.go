package mock

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/db"
)

// Dispatcher implements task dispatching for tests.
type Dispatcher struct {
	ProcessCalled bool
	ProcessIDs    []db.UUID
	ProcessErr    error

	CaptionsCalled   bool
	CaptionsVideoIDs []db.UUID
	CaptionsShortID  *db.UUID
	CaptionsErr      error
}

func (m *Dispatcher) EnqueueProcessVideo(ctx context.Context, id db.UUID) error {
	m.ProcessCalled = true
	m.ProcessIDs = append(m.ProcessIDs, id)
	return m.ProcessErr
}

func (m *Dispatcher) EnqueueGenerateCaptions(ctx context.Context, videoID db.UUID, shortID *db.UUID) error {
	m.CaptionsCalled = true
	m.CaptionsVideoIDs = append(m.CaptionsVideoIDs, videoID)
	m.CaptionsShortID = shortID
	return m.CaptionsErr
}
