// Package synthesize recomputes a project's presentation document from the
// full set of its transcribed videos.
package synthesize

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

// Synthesizer regenerates the whole document from the current video corpus
// on every call rather than patching in deltas: the document then always
// reflects the complete transcript set, at the cost of repeated generation.
// Synthesis for one project is serialized on the project ID so two calls
// cannot read the same prior version and both write.
type Synthesizer struct {
	projectRepo  repositories.ProjectRepository
	videoRepo    repositories.VideoRepository
	docRepo      repositories.DocumentRepository
	chat         services.ChatModel
	projectLocks *keylock.KeyLock
	logger       *slog.Logger
}

// New creates a Synthesizer.
func New(
	projectRepo repositories.ProjectRepository,
	videoRepo repositories.VideoRepository,
	docRepo repositories.DocumentRepository,
	chat services.ChatModel,
	logger *slog.Logger,
) *Synthesizer {
	return &Synthesizer{
		projectRepo:  projectRepo,
		videoRepo:    videoRepo,
		docRepo:      docRepo,
		chat:         chat,
		projectLocks: keylock.New(),
		logger:       logger,
	}
}

// Synthesize recomputes the project's document. It fails with ErrNoContent,
// before any external call, when the project has no transcribed video with a
// non-empty transcript. The content call and the follow-up summary call are
// one atomic unit: nothing is persisted unless both succeed.
func (s *Synthesizer) Synthesize(ctx context.Context, projectID, userID string) (*models.Document, error) {
	s.projectLocks.Lock(projectID)
	defer s.projectLocks.Unlock(projectID)

	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.ListTranscribed(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, &domain.NoContentError{
			Message: fmt.Sprintf("project '%s' has no transcribed videos", project.Name),
		}
	}

	transcripts := make([]string, len(videos))
	for i, v := range videos {
		transcripts[i] = *v.Transcript
	}

	existing, err := s.docRepo.GetByProject(ctx, projectID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var content string
	if existing == nil {
		content, err = s.chat.Generate(ctx, createSystem, createPrompt(project, transcripts))
	} else {
		content, err = s.chat.Generate(ctx, updateSystem, updatePrompt(project, existing.Content, transcripts))
	}
	if err != nil {
		return nil, fmt.Errorf("generate document: %w", err)
	}

	notes, err := s.chat.Generate(ctx, summarySystem, content)
	if err != nil {
		return nil, fmt.Errorf("summarize document: %w", err)
	}

	title := extractTitle(content, project)
	now := time.Now()

	if existing == nil {
		doc := &models.Document{
			ID:             uuid.NewString(),
			ProjectID:      projectID,
			UserID:         userID,
			Title:          title,
			Content:        content,
			Version:        1,
			VersionNotes:   notes,
			VideosIncluded: len(videos),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return nil, err
		}

		s.logger.Info("document created",
			"id", doc.ID,
			"project_id", projectID,
			"videos_included", doc.VideosIncluded,
		)
		return doc, nil
	}

	existing.Title = title
	existing.Content = content
	existing.Version++
	existing.VersionNotes = notes
	existing.VideosIncluded = len(videos)
	existing.UpdatedAt = now

	if err := s.docRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info("document resynthesized",
		"id", existing.ID,
		"project_id", projectID,
		"version", existing.Version,
		"videos_included", existing.VideosIncluded,
	)

	return existing, nil
}
