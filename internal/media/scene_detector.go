package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/port"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// sceneScoreThreshold is the per-frame content-change score above which a
	// frame counts as a scene boundary candidate.
	sceneScoreThreshold = 0.3
	// maxSceneCandidates caps how many boundary candidates a single pass may
	// return.
	maxSceneCandidates = 5
)

var (
	ptsTimeRe    = regexp.MustCompile(`pts_time:([\d.]+)`)
	sceneScoreRe = regexp.MustCompile(`scene_score=([\d.]+)`)
)

type sceneChange struct {
	timestamp float64
	score     float64
}

// SceneDetector runs ffmpeg's scene-change scoring filter over the decoded
// stream and extracts candidate cut timestamps from its metadata output.
type SceneDetector struct {
	timeout time.Duration
}

// compile-time check: *SceneDetector must satisfy port.SceneDetector
var _ port.SceneDetector = (*SceneDetector)(nil)

func NewSceneDetector(timeout time.Duration) *SceneDetector {
	return &SceneDetector{timeout: timeout}
}

// DetectScenes returns up to maxSceneCandidates cut timestamps, ranked by
// change score. Candidates closer than minSceneLength to their predecessor
// are dropped. Callers pairing timestamps into segments must re-sort them
// ascending first.
func (d *SceneDetector) DetectScenes(ctx context.Context, path string, minSceneLength float64) ([]float64, error) {
	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("scenes-%d.txt", time.Now().UnixNano()))
	defer func() {
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			logger.Warnf(ctx, "failed to clean up scene metadata file %q: %v", outPath, err)
		}
	}()

	cmd := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"vf": fmt.Sprintf("select='gt(scene,%g)',metadata=print:file=%s", sceneScoreThreshold, outPath),
			"f":  "null",
		}).
		Compile()
	if err := runCmd(ctx, cmd, d.timeout); err != nil {
		return nil, fmt.Errorf("scene detection on %q: %w", path, err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read scene metadata %q: %w", outPath, err)
	}

	return selectCandidates(parseSceneScores(raw), minSceneLength), nil
}

// parseSceneScores walks the metadata printout, pairing each pts_time line
// with the scene_score line that follows it.
func parseSceneScores(raw []byte) []sceneChange {
	var (
		scenes  []sceneChange
		pending *float64
	)
	for _, line := range regexp.MustCompile(`\r?\n`).Split(string(raw), -1) {
		if m := ptsTimeRe.FindStringSubmatch(line); m != nil {
			if ts, err := strconv.ParseFloat(m[1], 64); err == nil {
				pending = &ts
			}
			continue
		}
		if m := sceneScoreRe.FindStringSubmatch(line); m != nil && pending != nil {
			if score, err := strconv.ParseFloat(m[1], 64); err == nil && *pending > 0 {
				scenes = append(scenes, sceneChange{timestamp: *pending, score: score})
			}
			pending = nil
		}
	}
	return scenes
}

// selectCandidates drops candidates that crowd their predecessor, then keeps
// the highest-scoring ones.
func selectCandidates(scenes []sceneChange, minSceneLength float64) []float64 {
	var spaced []sceneChange
	for i, s := range scenes {
		if i > 0 && s.timestamp-scenes[i-1].timestamp < minSceneLength {
			continue
		}
		spaced = append(spaced, s)
	}

	sort.SliceStable(spaced, func(i, j int) bool { return spaced[i].score > spaced[j].score })
	if len(spaced) > maxSceneCandidates {
		spaced = spaced[:maxSceneCandidates]
	}

	timestamps := make([]float64, 0, len(spaced))
	for _, s := range spaced {
		timestamps = append(timestamps, s.timestamp)
	}
	return timestamps
}
