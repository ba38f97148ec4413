package video

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type videoGetterSrv struct {
	videos port.VideoRepository
	shorts port.ShortRepository
	strg   port.Storage
	bucket string
}

// compile-time check: *videoGetterSrv must satisfy port.VideoGetter
var _ port.VideoGetter = (*videoGetterSrv)(nil)

// NewVideoGetter constructs a VideoGetter implementation.
func NewVideoGetter(videos port.VideoRepository, shorts port.ShortRepository, strg port.Storage, bucket string) port.VideoGetter {
	return &videoGetterSrv{videos: videos, shorts: shorts, strg: strg, bucket: bucket}
}

// GetVideo returns the video with its shorts, every object key resolved to a
// signed URL. ValidUntil bounds how long the response may be cached; it
// follows the shortest-lived link in it.
func (s *videoGetterSrv) GetVideo(ctx context.Context, id db.UUID) (*port.GetVideoOutput, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	now := time.Now()
	out := &port.GetVideoOutput{
		ValidUntil:      now.Add(adHocLinkTTL),
		ID:              video.ID,
		Title:           video.Title,
		Status:          video.Status,
		DurationSeconds: video.DurationSeconds,
	}

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, video.ObjectKey, adHocLinkTTL)
	if err != nil {
		return nil, err
	}
	out.URL = url

	if video.ThumbnailKey != nil {
		thumbURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, *video.ThumbnailKey, artifactLinkTTL)
		if err != nil {
			logger.Warnf(ctx, "could not sign thumbnail link for video #%s: %v", id, err)
		} else {
			out.ThumbnailURL = thumbURL
		}
	}

	shorts, err := s.shorts.ListByVideoID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, short := range shorts {
		shortURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, short.ObjectKey, artifactLinkTTL)
		if err != nil {
			return nil, err
		}
		shortOut := port.ShortOutput{
			ID:              short.ID,
			Title:           short.Title,
			URL:             shortURL,
			DurationSeconds: short.DurationSeconds,
			StartSeconds:    short.StartSeconds,
			EndSeconds:      short.EndSeconds,
			Filter:          short.Filter,
		}
		if short.ThumbnailKey != nil {
			thumbURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, *short.ThumbnailKey, artifactLinkTTL)
			if err != nil {
				logger.Warnf(ctx, "could not sign thumbnail link for short #%s: %v", short.ID, err)
			} else {
				shortOut.ThumbnailURL = thumbURL
			}
		}
		out.Shorts = append(out.Shorts, shortOut)
	}

	return out, nil
}
