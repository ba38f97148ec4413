package video

import (
	"context"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/logger"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/clipshift/shorts-ms-go/internal/validation"
)

type uploadLinkGeneratorSrv struct {
	videos   port.VideoRepository
	settings port.SettingsRepository
	strg     port.Storage
	genUUID  port.UUIDGen
	bucket   string
}

// compile-time check: *uploadLinkGeneratorSrv must satisfy port.UploadLinkGenerator
var _ port.UploadLinkGenerator = (*uploadLinkGeneratorSrv)(nil)

// NewUploadLinkGenerator constructs an UploadLinkGenerator implementation.
func NewUploadLinkGenerator(videos port.VideoRepository, settings port.SettingsRepository, strg port.Storage, genUUID port.UUIDGen, bucket string) port.UploadLinkGenerator {
	return &uploadLinkGeneratorSrv{videos: videos, settings: settings, strg: strg, genUUID: genUUID, bucket: bucket}
}

// GenerateUploadLink registers a pending video together with its processing
// settings and hands back a presigned PUT link for the source file.
func (s *uploadLinkGeneratorSrv) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	video := &model.Video{
		ID:        s.genUUID(),
		UserID:    in.UserID,
		Title:     in.Title,
		ObjectKey: sourceObjectKey(in.UserID, in.Filename, time.Now().UTC()),
		Status:    model.VideoStatusPending,
	}

	settings := in.Settings
	if settings == nil {
		settings = model.DefaultProcessingSettings(video.ID)
	} else {
		settings.VideoID = video.ID
		if err := validation.ValidateStruct(settings); err != nil {
			return port.GenerateUploadLinkOutput{}, err
		}
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}
	if err := s.settings.Create(ctx, settings); err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}

	url, err := s.strg.GeneratePresignedUploadURL(ctx, s.bucket, video.ObjectKey, uploadLinkTTL)
	if err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}
	logger.Infof(ctx, "registered pending video #%s for user %s", video.ID, in.UserID)

	return port.GenerateUploadLinkOutput{
		ID:  video.ID,
		URL: url,
	}, nil
}
