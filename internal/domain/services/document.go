package services

import (
	"context"

	"voicedeck/internal/domain/models"
)

// UpdateDocumentRequest is a manual content edit. Each edit bumps the
// document version by 1, exactly like a resynthesis.
type UpdateDocumentRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// DocumentService owns document synthesis and manual edits.
type DocumentService interface {
	// Synthesize recomputes the project's document from all currently
	// transcribed videos. Fails with ErrNoContent, before any external
	// call, when the project has no transcribed video.
	Synthesize(ctx context.Context, projectID, userID string) (*models.Document, error)

	GetByProject(ctx context.Context, projectID, userID string) (*models.Document, error)
	UpdateDocument(ctx context.Context, id, userID string, req *UpdateDocumentRequest) (*models.Document, error)
	DeleteDocument(ctx context.Context, id, userID string) error
}

// DashboardService aggregates workspace counters and recent activity.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*models.Dashboard, error)
}
