package video

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/clipshift/shorts-ms-go/internal/validation"
	"golang.org/x/net/context"
)

type processVideoSrv struct {
	videos      port.VideoRepository
	shorts      port.ShortRepository
	settings    port.SettingsRepository
	failures    port.SegmentFailureRepository
	strg        port.Storage
	cache       port.Cache
	prober      port.Prober
	transcoder  port.Transcoder
	thumbnailer port.Thumbnailer
	selector    segmentSelector
	genUUID     port.UUIDGen
	bucket      string
	thumbCount  int
}

// compile-time check: *processVideoSrv must satisfy port.VideoProcessor
var _ port.VideoProcessor = (*processVideoSrv)(nil)

// NewVideoProcessor constructs the pipeline orchestrator.
func NewVideoProcessor(
	videos port.VideoRepository,
	shorts port.ShortRepository,
	settings port.SettingsRepository,
	failures port.SegmentFailureRepository,
	strg port.Storage,
	cache port.Cache,
	prober port.Prober,
	detector port.SceneDetector,
	transcoder port.Transcoder,
	thumbnailer port.Thumbnailer,
	genUUID port.UUIDGen,
	bucket string,
	thumbCount int,
) port.VideoProcessor {
	return &processVideoSrv{
		videos:      videos,
		shorts:      shorts,
		settings:    settings,
		failures:    failures,
		strg:        strg,
		cache:       cache,
		prober:      prober,
		transcoder:  transcoder,
		thumbnailer: thumbnailer,
		selector:    segmentSelector{detector: detector},
		genUUID:     genUUID,
		bucket:      bucket,
		thumbCount:  thumbCount,
	}
}

// segmentError carries which stage of a segment's processing broke, so the
// persisted failure record can say more than "it failed".
type segmentError struct {
	stage string
	err   error
}

func (e *segmentError) Error() string { return e.stage + ": " + e.err.Error() }
func (e *segmentError) Unwrap() error { return e.err }

// ProcessVideo runs the whole pipeline for one video. The status row is the
// only externally visible outcome; callers polling the video see PROCESSING
// until the final transition lands.
func (s *processVideoSrv) ProcessVideo(ctx context.Context, id db.UUID) error {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}

	// The run lock: only one in-flight run per video, enforced by a
	// compare-and-set on the status column.
	locked, err := s.videos.TransitionStatus(ctx, id,
		[]model.VideoStatus{model.VideoStatusPending, model.VideoStatusFailed},
		model.VideoStatusProcessing)
	if err != nil {
		return err
	}
	if !locked {
		return ErrRunInProgress
	}
	video.Status = model.VideoStatusProcessing
	s.invalidateCache(ctx, id)

	tmpDir, err := os.MkdirTemp("", "shorts-run-*")
	if err != nil {
		return s.failRun(ctx, id, fmt.Errorf("could not create working dir: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			logger.Warnf(ctx, "could not clean working dir %q: %v", tmpDir, err)
		}
	}()

	srcPath, err := s.downloadSource(ctx, video, tmpDir)
	if err != nil {
		return s.failRun(ctx, id, fmt.Errorf("download failed: %w", err))
	}

	duration, err := s.prober.Probe(ctx, srcPath)
	if err != nil {
		return s.failRun(ctx, id, fmt.Errorf("probe failed: %w", err))
	}
	logger.Infof(ctx, "video #%s runs %.2fs", id, duration)

	video.DurationSeconds = &duration
	s.generateMainThumbnail(ctx, video, srcPath, duration)
	if err := s.videos.Update(ctx, video); err != nil {
		return s.failRun(ctx, id, fmt.Errorf("could not save probed duration: %w", err))
	}

	settings := s.loadSettings(ctx, id)

	segments := s.selector.Select(ctx, srcPath, settings, duration)
	if len(segments) == 0 {
		return s.failRun(ctx, id, ErrNoSegments)
	}
	logger.Infof(ctx, "selected %d segments for video #%s", len(segments), id)

	succeeded := 0
	for i, segment := range segments {
		index := i + 1
		if err := s.processSegment(ctx, tmpDir, srcPath, video, settings, segment, index); err != nil {
			s.recordSegmentFailure(ctx, id, index, err)
			logger.Errorf(ctx, "segment %d of video #%s (%.2fs-%.2fs) skipped: %v",
				index, id, segment.Start, segment.Start+segment.Duration, err)
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		return s.failRun(ctx, id, fmt.Errorf("%w: all %d segments failed", ErrNoSegments, len(segments)))
	}

	completed, err := s.videos.TransitionStatus(ctx, id,
		[]model.VideoStatus{model.VideoStatusProcessing},
		model.VideoStatusCompleted)
	if err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	if !completed {
		// someone else moved the row mid-run, likely a stuck-run reset
		logger.Warnf(ctx, "video #%s left PROCESSING during the run, final status not applied", id)
		return nil
	}
	logger.Infof(ctx, "video #%s completed with %d/%d shorts", id, succeeded, len(segments))

	return nil
}

func (s *processVideoSrv) downloadSource(ctx context.Context, video *model.Video, tmpDir string) (string, error) {
	reader, err := s.strg.GetFile(ctx, s.bucket, video.ObjectKey)
	if err != nil {
		return "", err
	}
	defer func(reader io.ReadSeekCloser) {
		_ = reader.Close()
	}(reader)

	srcPath := filepath.Join(tmpDir, "source"+filepath.Ext(video.ObjectKey))
	f, err := os.Create(srcPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return srcPath, nil
}

// generateMainThumbnail is best-effort: a video without a poster frame is
// still a processable video.
func (s *processVideoSrv) generateMainThumbnail(ctx context.Context, video *model.Video, srcPath string, duration float64) {
	thumbs, err := s.thumbnailer.GenerateAtIntervals(ctx, srcPath, duration, s.thumbCount)
	if err != nil || len(thumbs) == 0 {
		logger.Warnf(ctx, "no main thumbnail for video #%s: %v", video.ID, err)
		return
	}

	key := videoThumbnailKey(video.ID)
	if err := s.strg.SaveFile(ctx, s.bucket, key, bytes.NewReader(thumbs[0]), int64(len(thumbs[0])), map[string]string{
		"Content-Type": "image/jpeg",
	}); err != nil {
		logger.Warnf(ctx, "could not upload main thumbnail for video #%s: %v", video.ID, err)
		return
	}
	video.ThumbnailKey = &key
}

// loadSettings returns the stored per-video settings, or defaults when the
// row is missing or fails validation. A bad row must not sink the run.
func (s *processVideoSrv) loadSettings(ctx context.Context, id db.UUID) *model.ProcessingSettings {
	settings, err := s.settings.GetByVideoID(ctx, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warnf(ctx, "could not load settings for video #%s, using defaults: %v", id, err)
		}
		return model.DefaultProcessingSettings(id)
	}
	if err := validation.ValidateStruct(settings); err != nil {
		logger.Warnf(ctx, "stored settings for video #%s are invalid, using defaults: %v", id, err)
		return model.DefaultProcessingSettings(id)
	}
	return settings
}

func (s *processVideoSrv) processSegment(ctx context.Context, tmpDir, srcPath string, video *model.Video, settings *model.ProcessingSettings, segment VideoSegment, index int) error {
	outPath := filepath.Join(tmpDir, fmt.Sprintf("segment_%03d.mp4", index))

	filter := model.FilterNone
	if settings.EnableFilters {
		filter = settings.Filter
	}

	if err := s.transcoder.ExtractSegment(ctx, srcPath, outPath, segment.Start, segment.Duration, filter); err != nil {
		return &segmentError{stage: "transcode", err: err}
	}

	objectKey := shortObjectKey(video.ID, index)
	if err := s.uploadFile(ctx, outPath, objectKey, "video/mp4"); err != nil {
		return &segmentError{stage: "upload", err: err}
	}

	// Thumbnail failure only costs the short its poster frame.
	var thumbKey *string
	if thumb, err := s.thumbnailer.Generate(ctx, outPath, segment.Duration/2); err != nil {
		logger.Warnf(ctx, "no thumbnail for segment %d of video #%s: %v", index, video.ID, err)
	} else {
		key := shortThumbnailKey(video.ID, index)
		if err := s.strg.SaveFile(ctx, s.bucket, key, bytes.NewReader(thumb), int64(len(thumb)), map[string]string{
			"Content-Type": "image/jpeg",
		}); err != nil {
			logger.Warnf(ctx, "could not upload thumbnail for segment %d of video #%s: %v", index, video.ID, err)
		} else {
			thumbKey = &key
		}
	}

	short := &model.Short{
		ID:              s.genUUID(),
		VideoID:         video.ID,
		UserID:          video.UserID,
		Title:           fmt.Sprintf("%s - Part %d", video.Title, index),
		ObjectKey:       objectKey,
		ThumbnailKey:    thumbKey,
		DurationSeconds: segment.Duration,
		StartSeconds:    segment.Start,
		EndSeconds:      segment.Start + segment.Duration,
	}
	if filter != model.FilterNone {
		short.Filter = &filter
	}
	if err := s.shorts.Create(ctx, short); err != nil {
		return &segmentError{stage: "persist", err: err}
	}

	return nil
}

func (s *processVideoSrv) uploadFile(ctx context.Context, path, objectKey, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	info, err := f.Stat()
	if err != nil {
		return err
	}

	return s.strg.SaveFile(ctx, s.bucket, objectKey, f, info.Size(), map[string]string{
		"Content-Type": contentType,
	})
}

func (s *processVideoSrv) recordSegmentFailure(ctx context.Context, videoID db.UUID, index int, err error) {
	stage := "unknown"
	var segErr *segmentError
	if errors.As(err, &segErr) {
		stage = segErr.stage
	}
	failure := &model.SegmentFailure{
		ID:           s.genUUID(),
		VideoID:      videoID,
		SegmentIndex: index,
		Stage:        stage,
		Reason:       err.Error(),
	}
	if createErr := s.failures.Create(ctx, failure); createErr != nil {
		logger.Warnf(ctx, "could not record failure of segment %d for video #%s: %v", index, videoID, createErr)
	}
}

func (s *processVideoSrv) failRun(ctx context.Context, id db.UUID, cause error) error {
	if _, err := s.videos.TransitionStatus(ctx, id,
		[]model.VideoStatus{model.VideoStatusProcessing},
		model.VideoStatusFailed); err != nil {
		logger.Errorf(ctx, "could not mark video #%s as failed: %v", id, err)
	}
	s.invalidateCache(ctx, id)
	return cause
}

func (s *processVideoSrv) invalidateCache(ctx context.Context, id db.UUID) {
	if err := s.cache.DeleteVideoDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for video #%s: %v", id, err)
	}
	if err := s.cache.DeleteEtagVideoDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for video #%s: %v", id, err)
	}
}
