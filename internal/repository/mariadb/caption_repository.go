package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type CaptionRepository struct {
	db *sql.DB
}

// compile-time check: *CaptionRepository must satisfy port.CaptionRepository
var _ port.CaptionRepository = (*CaptionRepository)(nil)

func NewCaptionRepository(db *sql.DB) *CaptionRepository {
	return &CaptionRepository{db: db}
}

func (r *CaptionRepository) Create(ctx context.Context, caption *model.Caption) error {
	log.Printf("creating database record for caption #%s...", caption.ID)

	const query = `
      INSERT INTO captions
        (id, video_id, short_id, text, start_seconds, end_seconds)
      VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		caption.ID, caption.VideoID, caption.ShortID,
		caption.Text, caption.StartSeconds, caption.EndSeconds,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *CaptionRepository) ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.Caption, error) {
	log.Printf("listing captions for video #%s...", videoID)

	const query = `
      SELECT id, video_id, short_id, text, start_seconds, end_seconds, created_at
      FROM captions
      WHERE video_id = ?
      ORDER BY start_seconds ASC
    `
	return r.list(ctx, query, videoID)
}

func (r *CaptionRepository) ListByShortID(ctx context.Context, shortID db.UUID) ([]model.Caption, error) {
	log.Printf("listing captions for short #%s...", shortID)

	const query = `
      SELECT id, video_id, short_id, text, start_seconds, end_seconds, created_at
      FROM captions
      WHERE short_id = ?
      ORDER BY start_seconds ASC
    `
	return r.list(ctx, query, shortID)
}

func (r *CaptionRepository) list(ctx context.Context, query string, ownerID db.UUID) ([]model.Caption, error) {
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("error closing rows: %v", err)
		}
	}()

	var captions []model.Caption
	for rows.Next() {
		var caption model.Caption
		if err := rows.Scan(
			&caption.ID, &caption.VideoID, &caption.ShortID,
			&caption.Text, &caption.StartSeconds, &caption.EndSeconds,
			&caption.CreatedAt,
		); err != nil {
			return nil, err
		}
		captions = append(captions, caption)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return captions, nil
}
