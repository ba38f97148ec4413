package port

import (
	"context"

	"github.com/clipshift/shorts-ms-go/internal/model"
)

// Prober extracts container-level metadata from a local media file.
type Prober interface {
	// Probe returns the total duration of the file in seconds.
	Probe(ctx context.Context, path string) (float64, error)
}

// SceneDetector finds candidate cut points in a video stream.
// Implementations return timestamps ranked by change score, capped to a
// small number of candidates; callers that pair timestamps into segments
// must re-sort them chronologically first.
type SceneDetector interface {
	DetectScenes(ctx context.Context, path string, minSceneLength float64) ([]float64, error)
}

// Transcoder extracts one time window of a source file into a new encoded
// file, optionally applying a named visual filter.
type Transcoder interface {
	ExtractSegment(ctx context.Context, inputPath, outputPath string, start, duration float64, filter model.Filter) error
}

// Thumbnailer produces scaled JPEG stills from a media file.
type Thumbnailer interface {
	Generate(ctx context.Context, path string, offsetSeconds float64) ([]byte, error)
	// GenerateAtIntervals extracts count frames evenly spaced across the
	// interior of the file. Partial success is fine; it errors only when no
	// thumbnail at all could be produced.
	GenerateAtIntervals(ctx context.Context, path string, duration float64, count int) ([][]byte, error)
}

// AudioExtractor pulls a mono 16kHz PCM track out of a video file.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, outputPath string) error
}

// TranscriptSpan is one timed span of transcribed speech.
type TranscriptSpan struct {
	Text  string
	Start float64
	End   float64
}

// Transcriber turns an audio file into timed text spans.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]TranscriptSpan, error)
}
