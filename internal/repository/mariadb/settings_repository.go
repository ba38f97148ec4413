package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type SettingsRepository struct {
	db *sql.DB
}

// compile-time check: *SettingsRepository must satisfy port.SettingsRepository
var _ port.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Create(ctx context.Context, settings *model.ProcessingSettings) error {
	log.Printf("creating processing settings for video #%s...", settings.VideoID)

	const query = `
      INSERT INTO processing_settings
        (video_id, segment_duration, enable_scene_detection, enable_captions, enable_filters, filter, min_segment_length, max_segments)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		settings.VideoID, settings.SegmentDuration,
		settings.EnableSceneDetection, settings.EnableCaptions,
		settings.EnableFilters, settings.Filter,
		settings.MinSegmentLength, settings.MaxSegments,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *SettingsRepository) GetByVideoID(ctx context.Context, videoID db.UUID) (*model.ProcessingSettings, error) {
	log.Printf("fetching processing settings for video #%s...", videoID)

	const query = `
      SELECT video_id, segment_duration, enable_scene_detection, enable_captions, enable_filters, filter, min_segment_length, max_segments
      FROM processing_settings
      WHERE video_id = ?
    `
	row := r.db.QueryRowContext(ctx, query, videoID)
	var settings model.ProcessingSettings
	if err := row.Scan(
		&settings.VideoID, &settings.SegmentDuration,
		&settings.EnableSceneDetection, &settings.EnableCaptions,
		&settings.EnableFilters, &settings.Filter,
		&settings.MinSegmentLength, &settings.MaxSegments,
	); err != nil {
		return nil, err
	}

	return &settings, nil
}
