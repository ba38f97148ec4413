package media

import (
	"context"
	"fmt"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Transcoder extracts time windows of a source file into newly encoded
// clips with a fixed codec/bitrate profile suitable for progressive
// playback.
type Transcoder struct {
	timeout time.Duration
}

// compile-time check: *Transcoder must satisfy port.Transcoder
var _ port.Transcoder = (*Transcoder)(nil)

func NewTranscoder(timeout time.Duration) *Transcoder {
	return &Transcoder{timeout: timeout}
}

// ExtractSegment re-encodes [start, start+duration) of inputPath into
// outputPath. The filter, when not "none", is applied before encoding.
func (t *Transcoder) ExtractSegment(ctx context.Context, inputPath, outputPath string, start, duration float64, filter model.Filter) error {
	outArgs := ffmpeg.KwArgs{
		"t":        fmt.Sprintf("%.3f", duration),
		"c:v":      "libx264",
		"c:a":      "aac",
		"b:v":      "2M",
		"b:a":      "128k",
		"movflags": "+faststart",
	}
	if graph := filterGraph(filter); graph != "" {
		outArgs["vf"] = graph
	}

	cmd := ffmpeg.Input(inputPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", start)}).
		Output(outputPath, outArgs).
		OverWriteOutput().
		Compile()
	if err := runCmd(ctx, cmd, t.timeout); err != nil {
		return fmt.Errorf("extract [%.2f, %.2f) of %q: %w", start, start+duration, inputPath, err)
	}
	return nil
}

// filterGraph maps a named filter to its ffmpeg filter graph. An unknown
// name falls through to no filtering rather than failing the segment.
func filterGraph(filter model.Filter) string {
	switch filter {
	case model.FilterBoost:
		return "eq=brightness=0.06:contrast=1.2:saturation=1.4"
	case model.FilterVintage:
		return "curves=preset=vintage"
	case model.FilterGrayscale:
		return "colorchannelmixer=.3:.4:.3:0:.3:.4:.3:0:.3:.4:.3"
	case model.FilterBlur:
		return "split=2[bg][fg];[bg]scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920,boxblur=20:5[bg];[bg][fg]overlay=(W-w)/2:(H-h)/2"
	default:
		return ""
	}
}
