package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/repositories"
)

// PostgresVideoRepository implements the VideoRepository interface
type PostgresVideoRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(config *RepositoryConfig) repositories.VideoRepository {
	return &PostgresVideoRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const videoColumns = "id, user_id, project_id, storage_url, storage_key, duration_seconds, size_bytes, mime_type, transcript, keyword, status, error_message, created_at, updated_at"

func scanVideo(row interface{ Scan(dest ...any) error }, v *models.Video) error {
	return row.Scan(
		&v.ID,
		&v.UserID,
		&v.ProjectID,
		&v.StorageURL,
		&v.StorageKey,
		&v.DurationSeconds,
		&v.SizeBytes,
		&v.MimeType,
		&v.Transcript,
		&v.Keyword,
		&v.Status,
		&v.ErrorMessage,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
}

// Create inserts a new video
func (r *PostgresVideoRepository) Create(ctx context.Context, video *models.Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, project_id, storage_url, storage_key, duration_seconds, size_bytes, mime_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		video.ID,
		video.UserID,
		video.ProjectID,
		video.StorageURL,
		video.StorageKey,
		video.DurationSeconds,
		video.SizeBytes,
		video.MimeType,
		video.Status,
		video.CreatedAt,
		video.UpdatedAt,
	).Scan(&video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by ID
func (r *PostgresVideoRepository) GetByID(ctx context.Context, id, userID string) (*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, videoColumns, r.tables.Videos)

	var video models.Video
	executor := GetExecutor(ctx, r.pool)
	err := scanVideo(executor.QueryRow(ctx, query, id, userID), &video)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	return &video, nil
}

// List retrieves the user's videos, optionally filtered by project
func (r *PostgresVideoRepository) List(ctx context.Context, userID, projectID string) ([]models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
	`, videoColumns, r.tables.Videos)

	args := []interface{}{userID}
	if projectID != "" {
		query += " AND project_id = $2"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at DESC"

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// ListTranscribed retrieves the project's transcribed videos with a
// non-empty transcript, oldest first so synthesis reads them in narration order.
func (r *PostgresVideoRepository) ListTranscribed(ctx context.Context, projectID string) ([]models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND status = $2 AND transcript IS NOT NULL AND transcript <> ''
		ORDER BY created_at ASC
	`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, models.StatusTranscribed)
	if err != nil {
		return nil, fmt.Errorf("list transcribed videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// UpdateStatus sets the status and error message only
func (r *PostgresVideoRepository) UpdateStatus(ctx context.Context, id string, status models.VideoStatus, errorMessage *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, error_message = $2, updated_at = NOW()
		WHERE id = $3
	`, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("update video status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Update persists transcript, keyword, project assignment, status and metadata
func (r *PostgresVideoRepository) Update(ctx context.Context, video *models.Video) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET project_id = $1, transcript = $2, keyword = $3, status = $4,
		    error_message = $5, duration_seconds = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		video.ProjectID,
		video.Transcript,
		video.Keyword,
		video.Status,
		video.ErrorMessage,
		video.DurationSeconds,
		video.UpdatedAt,
		video.ID,
		video.UserID,
	)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("video %s: %w", video.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a video
func (r *PostgresVideoRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountByUser counts all of the user's videos
func (r *PostgresVideoRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, r.tables.Videos)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}

	return count, nil
}

// CountByStatus counts the user's videos with the given statuses
func (r *PostgresVideoRepository) CountByStatus(ctx context.Context, userID string, statuses ...models.VideoStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(statuses))
	args := []interface{}{userID}
	for i, s := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, s)
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE user_id = $1 AND status IN (%s)
	`, r.tables.Videos, strings.Join(placeholders, ", "))

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count videos by status: %w", err)
	}

	return count, nil
}

// ListRecent returns the most recently created videos
func (r *PostgresVideoRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

func collectVideos(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.Video, error) {
	var videos []models.Video
	for rows.Next() {
		var video models.Video
		if err := scanVideo(rows, &video); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	if videos == nil {
		videos = []models.Video{}
	}

	return videos, nil
}
