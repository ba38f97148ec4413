package media

import (
	"context"
	"fmt"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/port"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioExtractor pulls the audio track out of a video as mono 16kHz 16-bit
// PCM, the input format transcription backends expect.
type AudioExtractor struct {
	timeout time.Duration
}

// compile-time check: *AudioExtractor must satisfy port.AudioExtractor
var _ port.AudioExtractor = (*AudioExtractor)(nil)

func NewAudioExtractor(timeout time.Duration) *AudioExtractor {
	return &AudioExtractor{timeout: timeout}
}

func (a *AudioExtractor) ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	cmd := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ac":     1,
			"ar":     16000,
			"acodec": "pcm_s16le",
			"f":      "wav",
		}).
		OverWriteOutput().
		Compile()
	if err := runCmd(ctx, cmd, a.timeout); err != nil {
		return fmt.Errorf("extract audio from %q: %w", videoPath, err)
	}
	return nil
}
