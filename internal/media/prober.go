package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/port"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrNoDuration is returned when ffprobe parses the container but reports no
// duration field.
var ErrNoDuration = errors.New("probe output contains no duration")

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Prober extracts container metadata through ffprobe.
type Prober struct {
	timeout time.Duration
}

// compile-time check: *Prober must satisfy port.Prober
var _ port.Prober = (*Prober)(nil)

func NewProber(timeout time.Duration) *Prober {
	return &Prober{timeout: timeout}
}

// Probe returns the total duration of the file in seconds. It is read-only
// and deterministic: probing the same unmodified file twice yields the same
// value.
func (p *Prober) Probe(ctx context.Context, path string) (float64, error) {
	raw, err := ffmpeg.ProbeWithTimeout(path, p.timeout, ffmpeg.KwArgs{})
	if err != nil {
		return 0, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return 0, fmt.Errorf("parse ffprobe output for %q: %w", path, err)
	}
	if out.Format.Duration == "" {
		return 0, fmt.Errorf("%q: %w", path, ErrNoDuration)
	}

	duration, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err)
	}
	return duration, nil
}
