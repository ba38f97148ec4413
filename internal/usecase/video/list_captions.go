package video

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type captionListerSrv struct {
	captions port.CaptionRepository
}

// compile-time check: *captionListerSrv must satisfy port.CaptionLister
var _ port.CaptionLister = (*captionListerSrv)(nil)

// NewCaptionLister constructs a CaptionLister implementation.
func NewCaptionLister(captions port.CaptionRepository) port.CaptionLister {
	return &captionListerSrv{captions: captions}
}

// ListCaptions returns the captions of a video, or of one of its shorts when
// ShortID is set, ordered by start time.
func (s *captionListerSrv) ListCaptions(ctx context.Context, in port.GenerateCaptionsInput) ([]port.CaptionOutput, error) {
	var (
		captions []model.Caption
		err      error
	)
	if in.ShortID != nil {
		captions, err = s.captions.ListByShortID(ctx, *in.ShortID)
	} else {
		captions, err = s.captions.ListByVideoID(ctx, in.VideoID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]port.CaptionOutput, 0, len(captions))
	for _, caption := range captions {
		out = append(out, port.CaptionOutput{
			Text:         caption.Text,
			StartSeconds: caption.StartSeconds,
			EndSeconds:   caption.EndSeconds,
		})
	}
	return out, nil
}
