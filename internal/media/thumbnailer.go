package media

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/port"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// thumbnailWidth is the fixed output width; height follows the source
// aspect ratio.
const thumbnailWidth = 640

// ErrNoThumbnails is returned when not a single frame could be extracted.
var ErrNoThumbnails = errors.New("no thumbnails could be generated")

// Thumbnailer extracts scaled JPEG stills from media files.
type Thumbnailer struct {
	timeout time.Duration
}

// compile-time check: *Thumbnailer must satisfy port.Thumbnailer
var _ port.Thumbnailer = (*Thumbnailer)(nil)

func NewThumbnailer(timeout time.Duration) *Thumbnailer {
	return &Thumbnailer{timeout: timeout}
}

// Generate extracts a single frame at the given offset, scaled to
// thumbnailWidth, and returns the JPEG bytes.
func (t *Thumbnailer) Generate(ctx context.Context, path string, offsetSeconds float64) ([]byte, error) {
	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("thumbnail-%d.jpg", time.Now().UnixNano()))
	defer func() {
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			logger.Warnf(ctx, "failed to clean up thumbnail file %q: %v", outPath, err)
		}
	}()

	cmd := ffmpeg.Input(path, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", offsetSeconds)}).
		Output(outPath, ffmpeg.KwArgs{
			"frames:v": 1,
			"q:v":      2,
			"vf":       fmt.Sprintf("scale=%d:-2", thumbnailWidth),
		}).
		OverWriteOutput().
		Compile()
	if err := runCmd(ctx, cmd, t.timeout); err != nil {
		return nil, fmt.Errorf("thumbnail at %.2fs of %q: %w", offsetSeconds, path, err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read thumbnail %q: %w", outPath, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("thumbnail at %.2fs of %q is empty", offsetSeconds, path)
	}
	return data, nil
}

// GenerateAtIntervals extracts count frames at evenly spaced offsets across
// (0, duration), excluding the very ends. It returns however many
// succeeded; only a total failure is an error.
func (t *Thumbnailer) GenerateAtIntervals(ctx context.Context, path string, duration float64, count int) ([][]byte, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("invalid duration %.2f for %q", duration, path)
	}

	interval := duration / float64(count+1)
	var thumbnails [][]byte
	for i := 0; i < count; i++ {
		offset := math.Min(interval*float64(i+1), duration-1)
		data, err := t.Generate(ctx, path, offset)
		if err != nil {
			logger.Warnf(ctx, "thumbnail %d/%d failed: %v", i+1, count, err)
			continue
		}
		thumbnails = append(thumbnails, data)
	}

	if len(thumbnails) == 0 {
		return nil, fmt.Errorf("%q: %w", path, ErrNoThumbnails)
	}
	return thumbnails, nil
}
