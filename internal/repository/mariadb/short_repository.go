package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type ShortRepository struct {
	db *sql.DB
}

// compile-time check: *ShortRepository must satisfy port.ShortRepository
var _ port.ShortRepository = (*ShortRepository)(nil)

func NewShortRepository(db *sql.DB) *ShortRepository {
	return &ShortRepository{db: db}
}

func (r *ShortRepository) Create(ctx context.Context, short *model.Short) error {
	log.Printf("creating database record for short #%s (video #%s)...", short.ID, short.VideoID)

	const query = `
      INSERT INTO shorts
        (id, video_id, user_id, title, object_key, thumbnail_key, duration_seconds, start_seconds, end_seconds, filter)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		short.ID, short.VideoID, short.UserID,
		short.Title, short.ObjectKey, short.ThumbnailKey,
		short.DurationSeconds, short.StartSeconds, short.EndSeconds,
		short.Filter,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *ShortRepository) GetByID(ctx context.Context, ID db.UUID) (*model.Short, error) {
	log.Printf("fetching short #%s from the database...", ID)

	const query = `
      SELECT id, video_id, user_id, title, object_key, thumbnail_key, duration_seconds, start_seconds, end_seconds, filter, created_at
      FROM shorts
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var short model.Short
	if err := row.Scan(
		&short.ID, &short.VideoID, &short.UserID,
		&short.Title, &short.ObjectKey, &short.ThumbnailKey,
		&short.DurationSeconds, &short.StartSeconds, &short.EndSeconds,
		&short.Filter, &short.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &short, nil
}

func (r *ShortRepository) ListByVideoID(ctx context.Context, videoID db.UUID) ([]model.Short, error) {
	log.Printf("listing shorts for video #%s...", videoID)

	const query = `
      SELECT id, video_id, user_id, title, object_key, thumbnail_key, duration_seconds, start_seconds, end_seconds, filter, created_at
      FROM shorts
      WHERE video_id = ?
      ORDER BY start_seconds ASC
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

	var shorts []model.Short
	for rows.Next() {
		var short model.Short
		if err := rows.Scan(
			&short.ID, &short.VideoID, &short.UserID,
			&short.Title, &short.ObjectKey, &short.ThumbnailKey,
			&short.DurationSeconds, &short.StartSeconds, &short.EndSeconds,
			&short.Filter, &short.CreatedAt,
		); err != nil {
			return nil, err
		}
		shorts = append(shorts, short)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shorts, nil
}
