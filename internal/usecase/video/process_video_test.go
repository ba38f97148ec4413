package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/mock"
	"github.com/clipshift/shorts-ms-go/internal/model"
)

type processDeps struct {
	videos      *mock.VideoRepo
	shorts      *mock.ShortRepo
	settings    *mock.SettingsRepo
	failures    *mock.SegmentFailureRepo
	strg        *mock.Storage
	cache       *mock.Cache
	prober      *mock.Prober
	detector    *mock.SceneDetector
	transcoder  *mock.Transcoder
	thumbnailer *mock.Thumbnailer
}

func newProcessDeps() *processDeps {
	return &processDeps{
		videos: &mock.VideoRepo{
			VideoRecord: &model.Video{
				ID:        db.NewUUID(),
				UserID:    "user-1",
				Title:     "My Video",
				ObjectKey: "uploads/user-1/123-source.mp4",
				Status:    model.VideoStatusPending,
			},
			TransitionOK: true,
		},
		shorts:     &mock.ShortRepo{},
		settings:   &mock.SettingsRepo{GetErr: sql.ErrNoRows},
		failures:   &mock.SegmentFailureRepo{},
		strg:       &mock.Storage{},
		cache:      &mock.Cache{},
		prober:     &mock.Prober{DurationOut: 100},
		detector:   &mock.SceneDetector{},
		transcoder: &mock.Transcoder{},
		thumbnailer: &mock.Thumbnailer{
			ThumbOut:     []byte("jpeg"),
			IntervalsOut: [][]byte{[]byte("jpeg")},
		},
	}
}

func (d *processDeps) build() *processVideoSrv {
	return NewVideoProcessor(
		d.videos, d.shorts, d.settings, d.failures,
		d.strg, d.cache,
		d.prober, d.detector, d.transcoder, d.thumbnailer,
		db.NewUUID, "videos", 3,
	).(*processVideoSrv)
}

// assertDirEmpty fails the test when dir still holds entries; used to verify
// working directories do not outlive a run.
func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %q: %v", dir, err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("temporary files left behind: %v", names)
	}
}

func lastTransition(t *testing.T, repo *mock.VideoRepo) model.VideoStatus {
	t.Helper()
	if len(repo.Transitions) == 0 {
		t.Fatal("expected at least one status transition")
	}
	return repo.Transitions[len(repo.Transitions)-1]
}

func TestProcessVideo_SceneBasedSuccess(t *testing.T) {
	d := newProcessDeps()
	d.detector.ScenesOut = []float64{10, 25, 60}
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}

	if got := lastTransition(t, d.videos); got != model.VideoStatusCompleted {
		t.Errorf("final status = %q; want %q", got, model.VideoStatusCompleted)
	}
	if len(d.shorts.Created) != 3 {
		t.Fatalf("expected 3 shorts, got %d", len(d.shorts.Created))
	}
	for i, short := range d.shorts.Created {
		want := fmt.Sprintf("My Video - Part %d", i+1)
		if short.Title != want {
			t.Errorf("short %d title = %q; want %q", i, short.Title, want)
		}
		if short.UserID != "user-1" {
			t.Errorf("short %d user = %q; want user-1", i, short.UserID)
		}
		if short.EndSeconds != short.StartSeconds+short.DurationSeconds {
			t.Errorf("short %d end mismatch", i)
		}
		if short.Filter != nil {
			t.Errorf("short %d filter = %v; want nil when filters are disabled", i, short.Filter)
		}
	}
	if d.videos.Updated == nil || d.videos.Updated.DurationSeconds == nil || *d.videos.Updated.DurationSeconds != 100 {
		t.Error("expected probed duration to be saved on the video")
	}
	if d.videos.Updated.ThumbnailKey == nil {
		t.Error("expected main thumbnail key to be saved on the video")
	}
	if len(d.failures.Created) != 0 {
		t.Errorf("expected no failure records, got %d", len(d.failures.Created))
	}
	if !d.cache.DelVideoCalled {
		t.Error("expected cache invalidation")
	}
}

func TestProcessVideo_PartialFailureStillCompletes(t *testing.T) {
	d := newProcessDeps()
	settings := model.DefaultProcessingSettings(d.videos.VideoRecord.ID)
	settings.EnableSceneDetection = false
	d.settings = &mock.SettingsRepo{SettingsRecord: settings}
	d.transcoder.Err = errors.New("encode blew up")
	d.transcoder.ErrOn = 3
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}

	if got := lastTransition(t, d.videos); got != model.VideoStatusCompleted {
		t.Errorf("final status = %q; want %q", got, model.VideoStatusCompleted)
	}
	if len(d.shorts.Created) != 4 {
		t.Fatalf("expected 4 shorts, got %d", len(d.shorts.Created))
	}
	// numbering keeps the original segment positions, leaving a gap at 3
	titles := make([]string, 0, 4)
	for _, short := range d.shorts.Created {
		titles = append(titles, short.Title)
	}
	want := []string{"My Video - Part 1", "My Video - Part 2", "My Video - Part 4", "My Video - Part 5"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles = %v; want %v", titles, want)
			break
		}
	}
	if len(d.failures.Created) != 1 {
		t.Fatalf("expected 1 failure record, got %d", len(d.failures.Created))
	}
	failure := d.failures.Created[0]
	if failure.SegmentIndex != 3 || failure.Stage != "transcode" {
		t.Errorf("failure record = (%d, %q); want (3, transcode)", failure.SegmentIndex, failure.Stage)
	}
	if !strings.Contains(failure.Reason, "encode blew up") {
		t.Errorf("failure reason %q should carry the tool diagnostic", failure.Reason)
	}
}

func TestProcessVideo_AllSegmentsFail(t *testing.T) {
	d := newProcessDeps()
	settings := model.DefaultProcessingSettings(d.videos.VideoRecord.ID)
	settings.EnableSceneDetection = false
	d.settings = &mock.SettingsRepo{SettingsRecord: settings}
	d.transcoder.Err = errors.New("encode blew up")
	srv := d.build()

	err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID)
	if !errors.Is(err, ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}

	if got := lastTransition(t, d.videos); got != model.VideoStatusFailed {
		t.Errorf("final status = %q; want %q", got, model.VideoStatusFailed)
	}
	if len(d.shorts.Created) != 0 {
		t.Errorf("expected no shorts, got %d", len(d.shorts.Created))
	}
	if len(d.failures.Created) != 5 {
		t.Errorf("expected 5 failure records, got %d", len(d.failures.Created))
	}
}

func TestProcessVideo_EmptySelectionFailsRun(t *testing.T) {
	d := newProcessDeps()
	d.prober.DurationOut = 5 // shorter than the minimum segment length
	settings := model.DefaultProcessingSettings(d.videos.VideoRecord.ID)
	settings.EnableSceneDetection = false
	d.settings = &mock.SettingsRepo{SettingsRecord: settings}
	srv := d.build()

	err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID)
	if !errors.Is(err, ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}
	if got := lastTransition(t, d.videos); got != model.VideoStatusFailed {
		t.Errorf("final status = %q; want %q", got, model.VideoStatusFailed)
	}
}

func TestProcessVideo_DownloadFailureIsFatal(t *testing.T) {
	d := newProcessDeps()
	d.strg.GetErr = errors.New("object gone")
	srv := d.build()

	err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID)
	if err == nil || !strings.Contains(err.Error(), "download failed") {
		t.Fatalf("expected download failure, got %v", err)
	}
	if got := lastTransition(t, d.videos); got != model.VideoStatusFailed {
		t.Errorf("final status = %q; want %q", got, model.VideoStatusFailed)
	}
	if len(d.shorts.Created) != 0 {
		t.Errorf("expected no shorts, got %d", len(d.shorts.Created))
	}
}

func TestProcessVideo_ProbeFailureIsFatal(t *testing.T) {
	d := newProcessDeps()
	d.prober.Err = errors.New("no duration field")
	srv := d.build()

	err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID)
	if err == nil || !strings.Contains(err.Error(), "probe failed") {
		t.Fatalf("expected probe failure, got %v", err)
	}
	if got := lastTransition(t, d.videos); got != model.VideoStatusFailed {
		t.Errorf("final status = %q; want %q", got, model.VideoStatusFailed)
	}
}

func TestProcessVideo_RunLockRejectsDuplicate(t *testing.T) {
	d := newProcessDeps()
	d.videos.TransitionOK = false // someone else holds the lock
	srv := d.build()

	err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID)
	if !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
	if d.strg.GetCalled {
		t.Error("a rejected run must not touch storage")
	}
}

func TestProcessVideo_NotFound(t *testing.T) {
	d := newProcessDeps()
	d.videos.GetErr = sql.ErrNoRows
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), db.NewUUID()); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestProcessVideo_ThumbnailFailureDoesNotSkipSegment(t *testing.T) {
	d := newProcessDeps()
	d.detector.ScenesOut = []float64{10, 25, 60}
	d.thumbnailer.Err = errors.New("no frames")
	d.thumbnailer.IntervalsErr = errors.New("no frames")
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}

	if len(d.shorts.Created) != 3 {
		t.Fatalf("expected 3 shorts, got %d", len(d.shorts.Created))
	}
	for i, short := range d.shorts.Created {
		if short.ThumbnailKey != nil {
			t.Errorf("short %d has a thumbnail key despite generation failure", i)
		}
	}
	if d.videos.Updated.ThumbnailKey != nil {
		t.Error("video has a thumbnail key despite generation failure")
	}
}

func TestProcessVideo_InvalidStoredSettingsFallBackToDefaults(t *testing.T) {
	d := newProcessDeps()
	d.detector.ScenesOut = []float64{10, 25, 60}
	d.settings = &mock.SettingsRepo{SettingsRecord: &model.ProcessingSettings{
		VideoID:         d.videos.VideoRecord.ID,
		SegmentDuration: 2, // below the allowed range
		Filter:          model.FilterNone,
	}}
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}
	// defaults enable scene detection, so the detector must have run
	if !d.detector.Called {
		t.Error("expected defaults to be applied in place of the invalid row")
	}
	if len(d.shorts.Created) != 3 {
		t.Errorf("expected 3 shorts, got %d", len(d.shorts.Created))
	}
}

func TestProcessVideo_RemovesWorkingDirOnSuccess(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	d := newProcessDeps()
	d.detector.ScenesOut = []float64{10, 25, 60}
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}

	assertDirEmpty(t, tmp)
}

func TestProcessVideo_RemovesWorkingDirOnFatalAbort(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	d := newProcessDeps()
	d.prober.Err = errors.New("no duration field")
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err == nil {
		t.Fatal("expected the run to fail")
	}

	// the source was already downloaded when the probe aborted the run
	assertDirEmpty(t, tmp)
}

func TestProcessVideo_RemovesWorkingDirOnPartialFailure(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	d := newProcessDeps()
	settings := model.DefaultProcessingSettings(d.videos.VideoRecord.ID)
	settings.EnableSceneDetection = false
	d.settings = &mock.SettingsRepo{SettingsRecord: settings}
	d.transcoder.Err = errors.New("encode blew up")
	d.transcoder.ErrOn = 3
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}

	assertDirEmpty(t, tmp)
}

func TestProcessVideo_LostRowOnFinalTransition(t *testing.T) {
	d := newProcessDeps()
	d.detector.ScenesOut = []float64{10, 25, 60}
	// the run lock is granted, but by the end of the run someone else has
	// moved the row out of PROCESSING
	d.videos.TransitionOKFn = func(from []model.VideoStatus, to model.VideoStatus) bool {
		return to != model.VideoStatusCompleted
	}
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("a lost final transition must not fail the run, got %v", err)
	}

	if got := lastTransition(t, d.videos); got != model.VideoStatusCompleted {
		t.Errorf("final transition attempted %q; want %q", got, model.VideoStatusCompleted)
	}
	if len(d.shorts.Created) != 3 {
		t.Errorf("expected the produced shorts to be kept, got %d", len(d.shorts.Created))
	}
	if !d.cache.DelVideoCalled {
		t.Error("expected cache invalidation even when the row was lost")
	}
}

func TestProcessVideo_AppliesFilterWhenEnabled(t *testing.T) {
	d := newProcessDeps()
	settings := model.DefaultProcessingSettings(d.videos.VideoRecord.ID)
	settings.EnableSceneDetection = false
	settings.EnableFilters = true
	settings.Filter = model.FilterGrayscale
	d.settings = &mock.SettingsRepo{SettingsRecord: settings}
	srv := d.build()

	if err := srv.ProcessVideo(context.Background(), d.videos.VideoRecord.ID); err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}

	if len(d.transcoder.Calls) == 0 {
		t.Fatal("expected transcoder calls")
	}
	for i, call := range d.transcoder.Calls {
		if call.Filter != model.FilterGrayscale {
			t.Errorf("call %d filter = %q; want grayscale", i, call.Filter)
		}
	}
	for i, short := range d.shorts.Created {
		if short.Filter == nil || *short.Filter != model.FilterGrayscale {
			t.Errorf("short %d filter not persisted", i)
		}
	}
}
