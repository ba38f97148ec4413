package mock

import (
	"context"
	"os"

	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

// Prober implements duration probing for tests.
type Prober struct {
	DurationOut float64
	Err         error

	Called bool
	Path   string
}

func (m *Prober) Probe(ctx context.Context, path string) (float64, error) {
	m.Called = true
	m.Path = path
	if m.Err != nil {
		return 0, m.Err
	}
	return m.DurationOut, nil
}

// SceneDetector implements scene detection for tests.
type SceneDetector struct {
	ScenesOut []float64
	Err       error

	Called       bool
	MinSceneLens []float64
}

func (m *SceneDetector) DetectScenes(ctx context.Context, path string, minSceneLength float64) ([]float64, error) {
	m.Called = true
	m.MinSceneLens = append(m.MinSceneLens, minSceneLength)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ScenesOut, nil
}

// ExtractedSegment captures one ExtractSegment call.
type ExtractedSegment struct {
	Start    float64
	Duration float64
	Filter   model.Filter
}

// Transcoder implements segment extraction for tests. Successful calls
// write a small dummy clip to outputPath so downstream upload steps have a
// real file to read.
type Transcoder struct {
	Err error
	// ErrOn fails extraction for the given 1-based call number only.
	ErrOn int

	Calls []ExtractedSegment
	calls int
}

func (m *Transcoder) ExtractSegment(ctx context.Context, inputPath, outputPath string, start, duration float64, filter model.Filter) error {
	m.calls++
	if m.ErrOn != 0 && m.calls == m.ErrOn {
		return m.Err
	}
	if m.ErrOn == 0 && m.Err != nil {
		return m.Err
	}
	if err := os.WriteFile(outputPath, []byte("clip"), 0o600); err != nil {
		return err
	}
	m.Calls = append(m.Calls, ExtractedSegment{Start: start, Duration: duration, Filter: filter})
	return nil
}

// Thumbnailer implements thumbnail generation for tests.
type Thumbnailer struct {
	ThumbOut     []byte
	IntervalsOut [][]byte

	Err          error
	IntervalsErr error

	GenerateCalled  bool
	IntervalsCalled bool
	Offsets         []float64
}

func (m *Thumbnailer) Generate(ctx context.Context, path string, offsetSeconds float64) ([]byte, error) {
	m.GenerateCalled = true
	m.Offsets = append(m.Offsets, offsetSeconds)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ThumbOut, nil
}

func (m *Thumbnailer) GenerateAtIntervals(ctx context.Context, path string, duration float64, count int) ([][]byte, error) {
	m.IntervalsCalled = true
	if m.IntervalsErr != nil {
		return nil, m.IntervalsErr
	}
	return m.IntervalsOut, nil
}

// AudioExtractor implements audio extraction for tests.
type AudioExtractor struct {
	Err error

	Called     bool
	VideoPath  string
	OutputPath string
}

func (m *AudioExtractor) ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	m.Called = true
	m.VideoPath = videoPath
	m.OutputPath = outputPath
	return m.Err
}

// Transcriber implements transcription for tests.
type Transcriber struct {
	SpansOut []port.TranscriptSpan
	Err      error

	Called bool
}

func (m *Transcriber) Transcribe(ctx context.Context, audioPath string) ([]port.TranscriptSpan, error) {
	m.Called = true
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SpansOut, nil
}
