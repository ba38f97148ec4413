package video

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/mock"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type captionDeps struct {
	videos      *mock.VideoRepo
	shorts      *mock.ShortRepo
	captions    *mock.CaptionRepo
	strg        *mock.Storage
	audio       *mock.AudioExtractor
	transcriber *mock.Transcriber
}

func newCaptionDeps() *captionDeps {
	return &captionDeps{
		videos: &mock.VideoRepo{VideoRecord: &model.Video{
			ID:        db.NewUUID(),
			ObjectKey: "uploads/user-1/123-source.mp4",
		}},
		shorts:   &mock.ShortRepo{},
		captions: &mock.CaptionRepo{},
		strg:     &mock.Storage{},
		audio:    &mock.AudioExtractor{},
		transcriber: &mock.Transcriber{SpansOut: []port.TranscriptSpan{
			{Text: "hello", Start: 0, End: 1.5},
			{Text: "world", Start: 1.5, End: 3},
		}},
	}
}

func (d *captionDeps) build() port.CaptionGenerator {
	return NewCaptionGenerator(d.videos, d.shorts, d.captions, d.strg, d.audio, d.transcriber, db.NewUUID, "videos")
}

func TestGenerateCaptions_ForVideo(t *testing.T) {
	d := newCaptionDeps()
	srv := d.build()

	videoID := d.videos.VideoRecord.ID
	if err := srv.GenerateCaptions(context.Background(), port.GenerateCaptionsInput{VideoID: videoID}); err != nil {
		t.Fatalf("GenerateCaptions: %v", err)
	}

	if !d.audio.Called || !d.transcriber.Called {
		t.Fatal("expected audio extraction and transcription to run")
	}
	if !strings.HasSuffix(d.audio.OutputPath, "audio.wav") {
		t.Errorf("audio written to %q; want audio.wav", d.audio.OutputPath)
	}
	if len(d.captions.Created) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(d.captions.Created))
	}
	for i, caption := range d.captions.Created {
		if caption.VideoID == nil || *caption.VideoID != videoID {
			t.Errorf("caption %d not owned by the video", i)
		}
		if caption.ShortID != nil {
			t.Errorf("caption %d must not reference a short", i)
		}
	}
	if d.captions.Created[0].Text != "hello" || d.captions.Created[1].Text != "world" {
		t.Error("caption texts do not match the transcript")
	}
}

func TestGenerateCaptions_ForShort(t *testing.T) {
	d := newCaptionDeps()
	shortID := db.NewUUID()
	d.shorts.ShortRecord = &model.Short{ID: shortID, ObjectKey: "shorts/abc/part_001.mp4"}
	srv := d.build()

	in := port.GenerateCaptionsInput{VideoID: d.videos.VideoRecord.ID, ShortID: &shortID}
	if err := srv.GenerateCaptions(context.Background(), in); err != nil {
		t.Fatalf("GenerateCaptions: %v", err)
	}

	if !d.shorts.GetCalled {
		t.Error("expected the short row to be resolved")
	}
	if d.videos.GetCalled {
		t.Error("the video row is not needed when a short is targeted")
	}
	for i, caption := range d.captions.Created {
		if caption.ShortID == nil || *caption.ShortID != shortID {
			t.Errorf("caption %d not owned by the short", i)
		}
		if caption.VideoID != nil {
			t.Errorf("caption %d must not reference the video", i)
		}
	}
}

func TestGenerateCaptions_OwnerNotFound(t *testing.T) {
	d := newCaptionDeps()
	d.videos.GetErr = sql.ErrNoRows
	srv := d.build()

	err := srv.GenerateCaptions(context.Background(), port.GenerateCaptionsInput{VideoID: db.NewUUID()})
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
	if d.strg.GetCalled {
		t.Error("nothing must be downloaded for a missing owner")
	}
}

func TestGenerateCaptions_TranscriptionFailureStoresNothing(t *testing.T) {
	d := newCaptionDeps()
	d.transcriber.Err = errors.New("model unavailable")
	srv := d.build()

	err := srv.GenerateCaptions(context.Background(), port.GenerateCaptionsInput{VideoID: d.videos.VideoRecord.ID})
	if err == nil || !strings.Contains(err.Error(), "transcription failed") {
		t.Fatalf("expected transcription failure, got %v", err)
	}
	if len(d.captions.Created) != 0 {
		t.Errorf("expected no captions, got %d", len(d.captions.Created))
	}
}

func TestGenerateCaptions_RemovesWorkingDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	d := newCaptionDeps()
	srv := d.build()

	if err := srv.GenerateCaptions(context.Background(), port.GenerateCaptionsInput{VideoID: d.videos.VideoRecord.ID}); err != nil {
		t.Fatalf("GenerateCaptions: %v", err)
	}

	assertDirEmpty(t, tmp)
}

func TestGenerateCaptions_RemovesWorkingDirOnFailure(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	d := newCaptionDeps()
	d.transcriber.Err = errors.New("model unavailable")
	srv := d.build()

	if err := srv.GenerateCaptions(context.Background(), port.GenerateCaptionsInput{VideoID: d.videos.VideoRecord.ID}); err == nil {
		t.Fatal("expected the call to fail")
	}

	// the downloaded media and extracted audio must not survive the failure
	assertDirEmpty(t, tmp)
}

func TestGenerateCaptions_AudioExtractionFailure(t *testing.T) {
	d := newCaptionDeps()
	d.audio.Err = errors.New("no audio stream")
	srv := d.build()

	err := srv.GenerateCaptions(context.Background(), port.GenerateCaptionsInput{VideoID: d.videos.VideoRecord.ID})
	if err == nil || !strings.Contains(err.Error(), "audio extraction failed") {
		t.Fatalf("expected audio extraction failure, got %v", err)
	}
	if d.transcriber.Called {
		t.Error("transcription must not run without an audio file")
	}
}
