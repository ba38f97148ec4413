package video

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type deleteVideoSrv struct {
	videos port.VideoRepository
	shorts port.ShortRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// compile-time check: *deleteVideoSrv must satisfy port.VideoDeleter
var _ port.VideoDeleter = (*deleteVideoSrv)(nil)

// NewVideoDeleter constructs a VideoDeleter implementation.
func NewVideoDeleter(videos port.VideoRepository, shorts port.ShortRepository, cache port.Cache, strg port.Storage, bucket string) port.VideoDeleter {
	return &deleteVideoSrv{videos: videos, shorts: shorts, cache: cache, strg: strg, bucket: bucket}
}

// DeleteVideo removes every stored artifact of the video, then its database
// rows in one transaction, then clears the cache.
func (s *deleteVideoSrv) DeleteVideo(ctx context.Context, id db.UUID) error {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}

	shorts, err := s.shorts.ListByVideoID(ctx, id)
	if err != nil {
		return err
	}
	for _, short := range shorts {
		if err := s.strg.RemoveFile(ctx, s.bucket, short.ObjectKey); err != nil {
			log.Printf("failed to remove short file %q: %v", short.ObjectKey, err)
		}
		if short.ThumbnailKey != nil {
			if err := s.strg.RemoveFile(ctx, s.bucket, *short.ThumbnailKey); err != nil {
				log.Printf("failed to remove thumbnail %q: %v", *short.ThumbnailKey, err)
			}
		}
	}
	if video.ThumbnailKey != nil {
		if err := s.strg.RemoveFile(ctx, s.bucket, *video.ThumbnailKey); err != nil {
			log.Printf("failed to remove thumbnail %q: %v", *video.ThumbnailKey, err)
		}
	}

	if err := s.strg.RemoveFile(ctx, s.bucket, video.ObjectKey); err != nil {
		return err
	}

	if err := s.videos.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if err := s.cache.DeleteVideoDetails(ctx, id); err != nil {
		log.Printf("failed deleting cache for video #%s: %v", id, err)
	}
	if err := s.cache.DeleteEtagVideoDetails(ctx, id); err != nil {
		log.Printf("failed deleting etag cache for video #%s: %v", id, err)
	}

	return nil
}
