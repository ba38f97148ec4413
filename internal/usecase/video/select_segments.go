package video

import (
	"context"
	"math"
	"sort"

	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

// segmentSelector turns a probed duration and per-video settings into the
// ordered list of windows the rest of the run will extract.
type segmentSelector struct {
	detector port.SceneDetector
}

// Select picks the segments to cut. Scene detection failure is never fatal;
// it degrades to the fixed-interval algorithm.
func (s segmentSelector) Select(ctx context.Context, path string, settings *model.ProcessingSettings, totalDuration float64) []VideoSegment {
	if totalDuration <= 0 {
		return nil
	}

	if settings.EnableSceneDetection && s.detector != nil {
		scenes, err := s.detector.DetectScenes(ctx, path, settings.MinSegmentLength)
		if err != nil {
			logger.Warnf(ctx, "scene detection failed, falling back to fixed intervals: %v", err)
		} else if segments := sceneSegments(scenes, settings, totalDuration); len(segments) > 0 {
			return segments
		} else {
			logger.Warn(ctx, "scene detection yielded no usable segments, falling back to fixed intervals")
		}
	}

	return basicSegments(settings, totalDuration)
}

// basicSegments slices the source into consecutive equal windows from t=0.
func basicSegments(settings *model.ProcessingSettings, totalDuration float64) []VideoSegment {
	count := int(math.Floor(totalDuration / settings.MinSegmentLength))
	if count > settings.MaxSegments {
		count = settings.MaxSegments
	}
	if count <= 0 {
		return nil
	}

	duration := math.Min(settings.SegmentDuration, totalDuration/float64(count))
	duration = math.Max(settings.MinSegmentLength, duration)

	var segments []VideoSegment
	for i := 0; i < count; i++ {
		start := float64(i) * duration
		if start+duration > totalDuration {
			break
		}
		segments = append(segments, VideoSegment{
			Start:    start,
			Duration: duration,
			Score:    1 - 0.1*float64(i),
		})
	}
	return segments
}

// sceneSegments pairs consecutive cut timestamps into windows, the last one
// running to the end of the source. The detector returns candidates ranked
// by score, so they are re-sorted chronologically before pairing.
func sceneSegments(scenes []float64, settings *model.ProcessingSettings, totalDuration float64) []VideoSegment {
	if len(scenes) == 0 {
		return nil
	}

	timestamps := make([]float64, 0, len(scenes))
	for _, ts := range scenes {
		if ts > 0 && ts < totalDuration {
			timestamps = append(timestamps, ts)
		}
	}
	if len(timestamps) == 0 {
		return nil
	}
	sort.Float64s(timestamps)

	var segments []VideoSegment
	for i, start := range timestamps {
		end := totalDuration
		if i+1 < len(timestamps) {
			end = timestamps[i+1]
		}
		if end-start < settings.MinSegmentLength {
			continue
		}
		segments = append(segments, VideoSegment{
			Start:    start,
			Duration: end - start,
			Score:    1,
		})
	}

	// Equal scores make this a no-op today, but ranking before truncation is
	// the contract; SliceStable keeps encounter order on ties.
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Score > segments[j].Score
	})
	if len(segments) > settings.MaxSegments {
		segments = segments[:settings.MaxSegments]
	}
	return segments
}
