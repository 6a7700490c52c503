// Package project owns project lifecycle, including the protected new-ideas
// bucket and thumbnail generation.
package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/repositories"
	"voicedeck/internal/domain/services"
)

const maxProjectNameLength = 120

type projectService struct {
	projectRepo repositories.ProjectRepository
	images      services.ImageGenerator
	logger      *slog.Logger
}

// NewService creates the project service.
func NewService(
	projectRepo repositories.ProjectRepository,
	images services.ImageGenerator,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		images:      images,
		logger:      logger,
	}
}

// CreateProject creates a project explicitly. A duplicate name for the same
// user fails with a conflict; the same name under another user is fine.
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	color := models.DefaultProjectColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       color,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"user_id", req.UserID,
	)

	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, userID)
}

func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectRepo.List(ctx, userID)
}

func (s *projectService) UpdateProject(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		// The bucket keeps its fixed name so classification can always
		// find it.
		if project.IsNewIdeas {
			return nil, &domain.ForbiddenError{Message: "the new-ideas project cannot be renamed"}
		}
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Color != nil {
		project.Color = *req.Color
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID, "user_id", userID)

	return project, nil
}

// DeleteProject removes a project with its videos and document. The
// new-ideas bucket is protected from deletion regardless of caller.
func (s *projectService) DeleteProject(ctx context.Context, id, userID string) error {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if project.IsNewIdeas {
		return &domain.ForbiddenError{Message: "the new-ideas project cannot be deleted"}
	}

	if err := s.projectRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id, "user_id", userID)

	return nil
}

// GenerateThumbnail asks the image collaborator for a cover image and
// persists its URL on the project.
func (s *projectService) GenerateThumbnail(ctx context.Context, id, userID string) (string, error) {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Minimalist abstract cover illustration for a product project named %q.", project.Name)
	if project.Description != nil && *project.Description != "" {
		prompt += " The project is about: " + *project.Description
	}

	url, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate thumbnail: %w", err)
	}

	project.ThumbnailURL = &url
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return "", err
	}

	s.logger.Info("thumbnail generated", "project_id", id)

	return url, nil
}

func validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, maxProjectNameLength)),
	)
}

func validateUpdateRequest(req *services.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, maxProjectNameLength)),
	)
}
