package repositories

import (
	"context"

	"voicedeck/internal/domain/models"
)

// ProjectRepository persists projects. Every read is scoped by the owning
// user so one user can never see another user's projects.
type ProjectRepository interface {
	// Create inserts a project. Returns a ConflictError when the user
	// already owns a project with the same name.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID for the given owner.
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// GetByName retrieves a project by exact name for the given owner.
	GetByName(ctx context.Context, userID, name string) (*models.Project, error)

	// GetNewIdeas retrieves the user's new-ideas bucket, if present.
	GetNewIdeas(ctx context.Context, userID string) (*models.Project, error)

	// List retrieves all projects for a user, newest activity first.
	List(ctx context.Context, userID string) ([]models.Project, error)

	// Update persists name, description, color and thumbnail changes.
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project and, via FK cascade, its videos and document.
	Delete(ctx context.Context, id, userID string) error

	// CountByUser counts the user's projects, excluding the new-ideas bucket.
	CountByUser(ctx context.Context, userID string) (int, error)

	// ListRecent returns the most recently updated projects.
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Project, error)
}
