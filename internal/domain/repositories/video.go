package repositories

import (
	"context"

	"voicedeck/internal/domain/models"
)

// VideoRepository persists videos and the status state machine fields.
type VideoRepository interface {
	// Create inserts a video row.
	Create(ctx context.Context, video *models.Video) error

	// GetByID retrieves a video by ID for the given owner.
	GetByID(ctx context.Context, id, userID string) (*models.Video, error)

	// List retrieves the user's videos, optionally filtered by project.
	List(ctx context.Context, userID, projectID string) ([]models.Video, error)

	// ListTranscribed retrieves the project's videos with status transcribed
	// and a non-empty transcript, oldest first.
	ListTranscribed(ctx context.Context, projectID string) ([]models.Video, error)

	// UpdateStatus sets the status and error message only.
	UpdateStatus(ctx context.Context, id string, status models.VideoStatus, errorMessage *string) error

	// Update persists transcript, keyword, project assignment, status and
	// metadata changes.
	Update(ctx context.Context, video *models.Video) error

	// Delete removes a video row.
	Delete(ctx context.Context, id, userID string) error

	// CountByUser counts all of the user's videos.
	CountByUser(ctx context.Context, userID string) (int, error)

	// CountByStatus counts the user's videos with the given statuses.
	CountByStatus(ctx context.Context, userID string, statuses ...models.VideoStatus) (int, error)

	// ListRecent returns the most recently created videos.
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Video, error)
}
