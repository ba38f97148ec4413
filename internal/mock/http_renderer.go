package mock

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	VideoOut []byte

	// etag values
	EtagVideo string

	// captured inputs
	GotVideoID db.UUID

	// errors
	GetVideoErr error

	// call flags
	GetVideoCalled bool
}

func (m *HTTPRenderer) RenderGetVideo(ctx context.Context, getter port.VideoGetter, id db.UUID) ([]byte, string, error) {
	m.GetVideoCalled = true
	m.GotVideoID = id
	return m.VideoOut, m.EtagVideo, m.GetVideoErr
}
