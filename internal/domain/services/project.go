package services

import (
	"context"

	"voicedeck/internal/domain/models"
)

// CreateProjectRequest is the payload for explicit project creation.
type CreateProjectRequest struct {
	UserID      string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// UpdateProjectRequest is the payload for project updates.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// ProjectService owns project lifecycle, including the protected
// new-ideas bucket and thumbnail generation.
type ProjectService interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id, userID string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject removes a project and its videos and document.
	// Deleting the new-ideas bucket fails with ErrForbidden.
	DeleteProject(ctx context.Context, id, userID string) error

	// GenerateThumbnail asks the image collaborator for a thumbnail and
	// persists its URL on the project.
	GenerateThumbnail(ctx context.Context, id, userID string) (string, error)
}
