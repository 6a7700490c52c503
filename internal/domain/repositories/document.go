package repositories

import (
	"context"

	"voicedeck/internal/domain/models"
)

// DocumentRepository persists the single live document per project.
type DocumentRepository interface {
	// Create inserts a document at version 1. Returns a ConflictError when
	// the project already has a document.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID for the given owner.
	GetByID(ctx context.Context, id, userID string) (*models.Document, error)

	// GetByProject retrieves the project's document, if present.
	GetByProject(ctx context.Context, projectID, userID string) (*models.Document, error)

	// Update replaces title, content, version, notes and video count.
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document row.
	Delete(ctx context.Context, id, userID string) error

	// CountByUser counts the user's documents.
	CountByUser(ctx context.Context, userID string) (int, error)
}
