// Package resolve maps classification results to concrete projects.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/repositories"
	"voicedeck/internal/domain/services"
	"voicedeck/internal/service/keylock"
)

// Resolver implements services.ProjectResolver. Get-or-create sequences are
// serialized per user and additionally guarded by the unique name constraint:
// a concurrent create that loses the race re-fetches the winner's row.
type Resolver struct {
	projectRepo repositories.ProjectRepository
	userLocks   *keylock.KeyLock
	logger      *slog.Logger
}

// New creates a Resolver.
func New(projectRepo repositories.ProjectRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		projectRepo: projectRepo,
		userLocks:   keylock.New(),
		logger:      logger,
	}
}

// Resolve returns the project the classified video belongs in. New-idea
// recordings land in the user's new-ideas bucket, created lazily. A
// suggested project name is matched exactly (case-sensitive) and created on
// first use. Without either signal the current assignment stands.
func (r *Resolver) Resolve(ctx context.Context, userID, currentProjectID string, c *services.Classification) (string, error) {
	switch {
	case c.IsNewIdea:
		project, err := r.getOrCreateNewIdeas(ctx, userID)
		if err != nil {
			return "", err
		}
		return project.ID, nil

	case c.SuggestedProjectName != nil && *c.SuggestedProjectName != "":
		project, err := r.getOrCreateNamed(ctx, userID, *c.SuggestedProjectName)
		if err != nil {
			return "", err
		}
		return project.ID, nil

	default:
		return currentProjectID, nil
	}
}

// GetOrCreateNewIdeas returns the user's new-ideas bucket, creating it on
// first access. Exported because video upload provisionally assigns new
// videos to the bucket before any classification has run.
func (r *Resolver) GetOrCreateNewIdeas(ctx context.Context, userID string) (*models.Project, error) {
	return r.getOrCreateNewIdeas(ctx, userID)
}

func (r *Resolver) getOrCreateNewIdeas(ctx context.Context, userID string) (*models.Project, error) {
	r.userLocks.Lock(userID)
	defer r.userLocks.Unlock(userID)

	project, err := r.projectRepo.GetNewIdeas(ctx, userID)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	description := models.NewIdeasDescription
	project = &models.Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        models.NewIdeasName,
		Description: &description,
		IsNewIdeas:  true,
		Color:       models.NewIdeasColor,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := r.projectRepo.Create(ctx, project); err != nil {
		// Lost a race on the unique constraint: the bucket exists now.
		if errors.Is(err, domain.ErrConflict) {
			return r.projectRepo.GetNewIdeas(ctx, userID)
		}
		return nil, fmt.Errorf("create new-ideas project: %w", err)
	}

	r.logger.Info("new-ideas project created", "id", project.ID, "user_id", userID)

	return project, nil
}

func (r *Resolver) getOrCreateNamed(ctx context.Context, userID, name string) (*models.Project, error) {
	r.userLocks.Lock(userID)
	defer r.userLocks.Unlock(userID)

	project, err := r.projectRepo.GetByName(ctx, userID, name)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	project = &models.Project{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     models.DefaultProjectColor,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := r.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return r.projectRepo.GetByName(ctx, userID, name)
		}
		return nil, fmt.Errorf("create project '%s': %w", name, err)
	}

	r.logger.Info("project created from classification", "id", project.ID, "name", name, "user_id", userID)

	return project, nil
}
