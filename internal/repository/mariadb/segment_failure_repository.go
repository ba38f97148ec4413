package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type SegmentFailureRepository struct {
	db *sql.DB
}

// compile-time check: *SegmentFailureRepository must satisfy port.SegmentFailureRepository
var _ port.SegmentFailureRepository = (*SegmentFailureRepository)(nil)

func NewSegmentFailureRepository(db *sql.DB) *SegmentFailureRepository {
	return &SegmentFailureRepository{db: db}
}

func (r *SegmentFailureRepository) Create(ctx context.Context, failure *model.SegmentFailure) error {
	log.Printf("recording failure of segment %d for video #%s (stage %q)...", failure.SegmentIndex, failure.VideoID, failure.Stage)

	const query = `
      INSERT INTO segment_failures
        (id, video_id, segment_index, stage, reason)
      VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		failure.ID, failure.VideoID,
		failure.SegmentIndex, failure.Stage, failure.Reason,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *SegmentFailureRepository) ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.SegmentFailure, error) {
	log.Printf("listing segment failures for video #%s...", videoID)

	const query = `
      SELECT id, video_id, segment_index, stage, reason, created_at
      FROM segment_failures
      WHERE video_id = ?
      ORDER BY segment_index ASC
    `
	rows, err := r.db.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("error closing rows: %v", err)
		}
	}()

	var failures []model.SegmentFailure
	for rows.Next() {
		var failure model.SegmentFailure
		if err := rows.Scan(
			&failure.ID, &failure.VideoID,
			&failure.SegmentIndex, &failure.Stage, &failure.Reason,
			&failure.CreatedAt,
		); err != nil {
			return nil, err
		}
		failures = append(failures, failure)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return failures, nil
}
