package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type captionGeneratorSrv struct {
	videos      port.VideoRepository
	shorts      port.ShortRepository
	captions    port.CaptionRepository
	strg        port.Storage
	audio       port.AudioExtractor
	transcriber port.Transcriber
	genUUID     port.UUIDGen
	bucket      string
}

// compile-time check: *captionGeneratorSrv must satisfy port.CaptionGenerator
var _ port.CaptionGenerator = (*captionGeneratorSrv)(nil)

// NewCaptionGenerator constructs a CaptionGenerator implementation.
func NewCaptionGenerator(
	videos port.VideoRepository,
	shorts port.ShortRepository,
	captions port.CaptionRepository,
	strg port.Storage,
	audio port.AudioExtractor,
	transcriber port.Transcriber,
	genUUID port.UUIDGen,
	bucket string,
) port.CaptionGenerator {
	return &captionGeneratorSrv{
		videos:      videos,
		shorts:      shorts,
		captions:    captions,
		strg:        strg,
		audio:       audio,
		transcriber: transcriber,
		genUUID:     genUUID,
		bucket:      bucket,
	}
}

// GenerateCaptions transcribes the audio track of a video, or of one of its
// shorts when ShortID is set, and persists one caption row per span. The
// call is all-or-nothing; no partial caption set is ever stored.
func (s *captionGeneratorSrv) GenerateCaptions(ctx context.Context, in port.GenerateCaptionsInput) error {
	objectKey, err := s.resolveObjectKey(ctx, in)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "captions-*")
	if err != nil {
		return fmt.Errorf("could not create working dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			logger.Warnf(ctx, "could not clean working dir %q: %v", tmpDir, err)
		}
	}()

	mediaPath := filepath.Join(tmpDir, "media"+filepath.Ext(objectKey))
	if err := s.downloadTo(ctx, objectKey, mediaPath); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	audioPath := filepath.Join(tmpDir, "audio.wav")
	if err := s.audio.ExtractAudio(ctx, mediaPath, audioPath); err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}

	spans, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	for _, span := range spans {
		caption := &model.Caption{
			ID:           s.genUUID(),
			Text:         span.Text,
			StartSeconds: span.Start,
			EndSeconds:   span.End,
		}
		if in.ShortID != nil {
			caption.ShortID = in.ShortID
		} else {
			videoID := in.VideoID
			caption.VideoID = &videoID
		}
		if err := s.captions.Create(ctx, caption); err != nil {
			return fmt.Errorf("could not persist caption: %w", err)
		}
	}
	logger.Infof(ctx, "persisted %d captions for video #%s", len(spans), in.VideoID)

	return nil
}

func (s *captionGeneratorSrv) resolveObjectKey(ctx context.Context, in port.GenerateCaptionsInput) (string, error) {
	if in.ShortID != nil {
		short, err := s.shorts.GetByID(ctx, *in.ShortID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", ErrVideoNotFound
			}
			return "", err
		}
		return short.ObjectKey, nil
	}

	video, err := s.videos.GetByID(ctx, in.VideoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrVideoNotFound
		}
		return "", err
	}
	return video.ObjectKey, nil
}

func (s *captionGeneratorSrv) downloadTo(ctx context.Context, objectKey, path string) error {
	reader, err := s.strg.GetFile(ctx, s.bucket, objectKey)
	if err != nil {
		return err
	}
	defer func(reader io.ReadSeekCloser) {
		_ = reader.Close()
	}(reader)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
