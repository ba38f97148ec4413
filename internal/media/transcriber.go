package media

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/port"
)

// PlaceholderTranscriber satisfies the transcription port with a single
// static span.
// TODO: replace with a Whisper-backed implementation once the model server
// is deployed; the port contract is final.
type PlaceholderTranscriber struct{}

// compile-time check: *PlaceholderTranscriber must satisfy port.Transcriber
var _ port.Transcriber = (*PlaceholderTranscriber)(nil)

func NewPlaceholderTranscriber() *PlaceholderTranscriber {
	return &PlaceholderTranscriber{}
}

func (t *PlaceholderTranscriber) Transcribe(ctx context.Context, audioPath string) ([]port.TranscriptSpan, error) {
	return []port.TranscriptSpan{
		{Text: "Auto-generated captions are temporarily unavailable", Start: 0, End: 5},
	}, nil
}
