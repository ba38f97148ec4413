package mariadb

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
	"github.com/clipshift/shorts-ms-go/internal/model"
	"github.com/clipshift/shorts-ms-go/internal/port"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video #%s, at status %q...", video.ID, video.Status)

	const query = `
      INSERT INTO videos
        (id, user_id, title, object_key, status, duration_seconds, thumbnail_key)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		video.ID, video.UserID, video.Title,
		video.ObjectKey, video.Status,
		video.DurationSeconds, video.ThumbnailKey,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, ID db.UUID) (*model.Video, error) {
	log.Printf("fetching video #%s from the database...", ID)

	const query = `
      SELECT id, user_id, title, object_key, status, duration_seconds, thumbnail_key, created_at, updated_at
      FROM videos
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var video model.Video
	if err := row.Scan(
		&video.ID, &video.UserID, &video.Title,
		&video.ObjectKey, &video.Status,
		&video.DurationSeconds, &video.ThumbnailKey,
		&video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	log.Printf("updating database record for video #%s, with status %q...", video.ID, video.Status)

	const query = `
      UPDATE videos
      SET
        title            = ?,
        object_key       = ?,
        status           = ?,
        duration_seconds = ?,
        thumbnail_key    = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		video.Title,
		video.ObjectKey,
		video.Status,
		video.DurationSeconds,
		video.ThumbnailKey,
		video.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) TransitionStatus(ctx context.Context, ID db.UUID, from []model.VideoStatus, to model.VideoStatus) (bool, error) {
	log.Printf("transitioning video #%s to status %q...", ID, to)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(from)), ", ")
	query := `
      UPDATE videos
      SET status = ?
      WHERE id = ? AND status IN (` + placeholders + `)
    `
	args := make([]interface{}, 0, len(from)+2)
	args = append(args, to, ID)
	for _, s := range from {
		args = append(args, s)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *VideoRepository) ListProcessingBefore(ctx context.Context, before time.Time) ([]db.UUID, error) {
	log.Printf("listing videos stuck in processing since before %s...", before.Format(time.RFC3339))

	const query = `
      SELECT id
      FROM videos
      WHERE status = ? AND updated_at < ?
      ORDER BY updated_at ASC
    `
	rows, err := r.db.QueryContext(ctx, query, model.VideoStatusProcessing, before)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("error closing rows: %v", err)
		}
	}()

	var IDs []db.UUID
	for rows.Next() {
		var ID db.UUID
		if err := rows.Scan(&ID); err != nil {
			return nil, err
		}
		IDs = append(IDs, ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return IDs, nil
}

func (r *VideoRepository) DeleteCascade(ctx context.Context, ID db.UUID) error {
	log.Printf("deleting video #%s and everything derived from it...", ID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	statements := []string{
		`DELETE FROM captions WHERE video_id = ? OR short_id IN (SELECT id FROM shorts WHERE video_id = ?)`,
		`DELETE FROM segment_failures WHERE video_id = ?`,
		`DELETE FROM shorts WHERE video_id = ?`,
		`DELETE FROM processing_settings WHERE video_id = ?`,
		`DELETE FROM videos WHERE id = ?`,
	}
	for i, stmt := range statements {
		args := []interface{}{ID}
		if i == 0 {
			args = append(args, ID)
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}
