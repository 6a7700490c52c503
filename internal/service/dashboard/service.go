// Package dashboard aggregates workspace counters and recent activity.
package dashboard

import (
	"context"
	"log/slog"

	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/repositories"
	"voicedeck/internal/domain/services"
)

const recentLimit = 5

type dashboardService struct {
	projectRepo repositories.ProjectRepository
	videoRepo   repositories.VideoRepository
	docRepo     repositories.DocumentRepository
	logger      *slog.Logger
}

// NewService creates the dashboard service.
func NewService(
	projectRepo repositories.ProjectRepository,
	videoRepo repositories.VideoRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.DashboardService {
	return &dashboardService{
		projectRepo: projectRepo,
		videoRepo:   videoRepo,
		docRepo:     docRepo,
		logger:      logger,
	}
}

// GetDashboard assembles the aggregate view. TotalProjects excludes the
// new-ideas bucket; every other counter covers the whole workspace.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*models.Dashboard, error) {
	totalProjects, err := s.projectRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalVideos, err := s.videoRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDocuments, err := s.docRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	transcribed, err := s.videoRepo.CountByStatus(ctx, userID, models.StatusTranscribed)
	if err != nil {
		return nil, err
	}

	pending, err := s.videoRepo.CountByStatus(ctx, userID, models.StatusUploaded, models.StatusTranscribing)
	if err != nil {
		return nil, err
	}

	recentProjects, err := s.projectRepo.ListRecent(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	recentVideos, err := s.videoRepo.ListRecent(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		TotalProjects:     totalProjects,
		TotalVideos:       totalVideos,
		TotalDocuments:    totalDocuments,
		TranscribedVideos: transcribed,
		PendingVideos:     pending,
		RecentProjects:    recentProjects,
		RecentVideos:      recentVideos,
	}, nil
}
