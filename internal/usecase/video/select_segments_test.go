package video

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/mock"
	"github.com/clipshift/shorts-ms-go/internal/model"
)

func testSettings() *model.ProcessingSettings {
	s := model.DefaultProcessingSettings(db.NewUUID())
	s.EnableSceneDetection = false
	return s
}

func TestBasicSegments_FixedIntervalScenario(t *testing.T) {
	s := testSettings() // segmentDuration 15, minSegmentLength 10, maxSegments 5

	segments := basicSegments(s, 100)

	if len(segments) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(segments))
	}
	wantStarts := []float64{0, 15, 30, 45, 60}
	wantScores := []float64{1.0, 0.9, 0.8, 0.7, 0.6}
	for i, seg := range segments {
		if seg.Start != wantStarts[i] {
			t.Errorf("segment %d start = %v; want %v", i, seg.Start, wantStarts[i])
		}
		if seg.Duration != 15 {
			t.Errorf("segment %d duration = %v; want 15", i, seg.Duration)
		}
		if math.Abs(seg.Score-wantScores[i]) > 1e-9 {
			t.Errorf("segment %d score = %v; want %v", i, seg.Score, wantScores[i])
		}
	}
}

func TestBasicSegments_NonOverlappingWithinDuration(t *testing.T) {
	s := testSettings()

	for _, total := range []float64{30, 55, 72.5, 100, 3600} {
		segments := basicSegments(s, total)
		if len(segments) > s.MaxSegments {
			t.Errorf("duration %v: %d segments exceeds max %d", total, len(segments), s.MaxSegments)
		}
		var prevEnd float64
		for i, seg := range segments {
			if seg.Duration < s.MinSegmentLength {
				t.Errorf("duration %v: segment %d shorter than minimum: %v", total, i, seg.Duration)
			}
			if seg.Start < prevEnd {
				t.Errorf("duration %v: segment %d overlaps predecessor", total, i)
			}
			if seg.Start+seg.Duration > total {
				t.Errorf("duration %v: segment %d exceeds total", total, i)
			}
			prevEnd = seg.Start + seg.Duration
		}
	}
}

func TestBasicSegments_SourceShorterThanMinimum(t *testing.T) {
	s := testSettings()

	if segments := basicSegments(s, 8); segments != nil {
		t.Errorf("expected no segments for an 8s source, got %v", segments)
	}
}

func TestSceneSegments_PairingScenario(t *testing.T) {
	s := testSettings()

	segments := sceneSegments([]float64{10, 25, 60}, s, 90)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	wantStarts := []float64{10, 25, 60}
	wantDurations := []float64{15, 35, 30}
	for i, seg := range segments {
		if seg.Start != wantStarts[i] || seg.Duration != wantDurations[i] {
			t.Errorf("segment %d = (%v, %v); want (%v, %v)",
				i, seg.Start, seg.Duration, wantStarts[i], wantDurations[i])
		}
	}
}

func TestSceneSegments_ResortsRankedTimestamps(t *testing.T) {
	s := testSettings()

	// the detector returns candidates ranked by score, not chronologically
	ranked := sceneSegments([]float64{60, 10, 25}, s, 90)
	chronological := sceneSegments([]float64{10, 25, 60}, s, 90)

	if !reflect.DeepEqual(ranked, chronological) {
		t.Errorf("ranked input %v differs from chronological input %v", ranked, chronological)
	}
}

func TestSceneSegments_DropsShortWindows(t *testing.T) {
	s := testSettings() // minSegmentLength 10

	segments := sceneSegments([]float64{10, 15, 40}, s, 90)

	// [10,15) is only 5s and must be dropped
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	for i, seg := range segments {
		if seg.Duration < s.MinSegmentLength {
			t.Errorf("segment %d shorter than minimum: %v", i, seg.Duration)
		}
	}
}

func TestSceneSegments_TruncatesToMaxSegments(t *testing.T) {
	s := testSettings()
	s.MaxSegments = 2

	segments := sceneSegments([]float64{10, 25, 40, 60}, s, 100)

	if len(segments) != 2 {
		t.Errorf("expected 2 segments after truncation, got %d", len(segments))
	}
}

func TestSceneSegments_IgnoresOutOfRangeTimestamps(t *testing.T) {
	s := testSettings()

	segments := sceneSegments([]float64{0, 95, 20}, s, 90)

	// t=0 and t>=total are not usable cut points
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Start != 20 || segments[0].Duration != 70 {
		t.Errorf("segment = (%v, %v); want (20, 70)", segments[0].Start, segments[0].Duration)
	}
}

func TestSelect_FallsBackOnDetectorError(t *testing.T) {
	s := testSettings()
	s.EnableSceneDetection = true
	detector := &mock.SceneDetector{Err: errors.New("boom")}
	selector := segmentSelector{detector: detector}

	got := selector.Select(context.Background(), "in.mp4", s, 100)

	if !detector.Called {
		t.Error("expected detector to be consulted")
	}
	if want := basicSegments(s, 100); !reflect.DeepEqual(got, want) {
		t.Errorf("fallback output %v differs from basic algorithm %v", got, want)
	}
}

func TestSelect_FallsBackOnEmptyScenes(t *testing.T) {
	s := testSettings()
	s.EnableSceneDetection = true
	selector := segmentSelector{detector: &mock.SceneDetector{}}

	got := selector.Select(context.Background(), "in.mp4", s, 100)

	if want := basicSegments(s, 100); !reflect.DeepEqual(got, want) {
		t.Errorf("fallback output %v differs from basic algorithm %v", got, want)
	}
}

func TestSelect_SceneDetectionDisabledSkipsDetector(t *testing.T) {
	s := testSettings()
	detector := &mock.SceneDetector{ScenesOut: []float64{10, 25}}
	selector := segmentSelector{detector: detector}

	selector.Select(context.Background(), "in.mp4", s, 100)

	if detector.Called {
		t.Error("detector must not run when scene detection is disabled")
	}
}

func TestSelect_ZeroDuration(t *testing.T) {
	s := testSettings()
	selector := segmentSelector{detector: &mock.SceneDetector{}}

	if got := selector.Select(context.Background(), "in.mp4", s, 0); got != nil {
		t.Errorf("expected no segments for zero duration, got %v", got)
	}
}
