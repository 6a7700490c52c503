package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
)

type countingProjectRepo struct {
	projects []models.Project
}

func (f *countingProjectRepo) Create(ctx context.Context, p *models.Project) error { return nil }
func (f *countingProjectRepo) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	return nil, &domain.NotFoundError{Message: "project not found"}
}
func (f *countingProjectRepo) GetByName(ctx context.Context, userID, name string) (*models.Project, error) {
	return nil, &domain.NotFoundError{Message: "project not found"}
}
func (f *countingProjectRepo) GetNewIdeas(ctx context.Context, userID string) (*models.Project, error) {
	return nil, &domain.NotFoundError{Message: "project not found"}
}
func (f *countingProjectRepo) List(ctx context.Context, userID string) ([]models.Project, error) {
	return f.forUser(userID), nil
}
func (f *countingProjectRepo) Update(ctx context.Context, p *models.Project) error   { return nil }
func (f *countingProjectRepo) Delete(ctx context.Context, id, userID string) error   { return nil }

func (f *countingProjectRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, p := range f.forUser(userID) {
		if !p.IsNewIdeas {
			count++
		}
	}
	return count, nil
}

func (f *countingProjectRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.Project, error) {
	projects := f.forUser(userID)
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

func (f *countingProjectRepo) forUser(userID string) []models.Project {
	var out []models.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

type countingVideoRepo struct {
	videos []models.Video
}

func (f *countingVideoRepo) Create(ctx context.Context, v *models.Video) error { return nil }
func (f *countingVideoRepo) GetByID(ctx context.Context, id, userID string) (*models.Video, error) {
	return nil, &domain.NotFoundError{Message: "video not found"}
}
func (f *countingVideoRepo) List(ctx context.Context, userID, projectID string) ([]models.Video, error) {
	return nil, nil
}
func (f *countingVideoRepo) ListTranscribed(ctx context.Context, projectID string) ([]models.Video, error) {
	return nil, nil
}
func (f *countingVideoRepo) UpdateStatus(ctx context.Context, id string, status models.VideoStatus, errorMessage *string) error {
	return nil
}
func (f *countingVideoRepo) Update(ctx context.Context, v *models.Video) error     { return nil }
func (f *countingVideoRepo) Delete(ctx context.Context, id, userID string) error   { return nil }

func (f *countingVideoRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, v := range f.videos {
		if v.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *countingVideoRepo) CountByStatus(ctx context.Context, userID string, statuses ...models.VideoStatus) (int, error) {
	count := 0
	for _, v := range f.videos {
		if v.UserID != userID {
			continue
		}
		for _, s := range statuses {
			if v.Status == s {
				count++
			}
		}
	}
	return count, nil
}

func (f *countingVideoRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.Video, error) {
	var out []models.Video
	for _, v := range f.videos {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type countingDocRepo struct {
	count int
}

func (f *countingDocRepo) Create(ctx context.Context, d *models.Document) error { return nil }
func (f *countingDocRepo) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	return nil, &domain.NotFoundError{Message: "document not found"}
}
func (f *countingDocRepo) GetByProject(ctx context.Context, projectID, userID string) (*models.Document, error) {
	return nil, &domain.NotFoundError{Message: "document not found"}
}
func (f *countingDocRepo) Update(ctx context.Context, d *models.Document) error   { return nil }
func (f *countingDocRepo) Delete(ctx context.Context, id, userID string) error    { return nil }
func (f *countingDocRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return f.count, nil
}

func TestGetDashboardCounters(t *testing.T) {
	projectRepo := &countingProjectRepo{
		projects: []models.Project{
			{ID: "bucket", UserID: "user-1", Name: models.NewIdeasName, IsNewIdeas: true},
			{ID: "p1", UserID: "user-1", Name: "Marketing"},
			{ID: "p2", UserID: "user-1", Name: "Podcast"},
			{ID: "other", UserID: "user-2", Name: "Not mine"},
		},
	}
	videoRepo := &countingVideoRepo{
		videos: []models.Video{
			{ID: "v1", UserID: "user-1", Status: models.StatusTranscribed},
			{ID: "v2", UserID: "user-1", Status: models.StatusTranscribed},
			{ID: "v3", UserID: "user-1", Status: models.StatusUploaded},
			{ID: "v4", UserID: "user-1", Status: models.StatusTranscribing},
			{ID: "v5", UserID: "user-1", Status: models.StatusError},
			{ID: "v6", UserID: "user-2", Status: models.StatusTranscribed},
		},
	}
	docRepo := &countingDocRepo{count: 2}

	svc := NewService(projectRepo, videoRepo, docRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	dash, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	// The new-ideas bucket does not count as a project.
	if dash.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, want 2", dash.TotalProjects)
	}
	if dash.TotalVideos != 5 {
		t.Errorf("TotalVideos = %d, want 5", dash.TotalVideos)
	}
	if dash.TotalDocuments != 2 {
		t.Errorf("TotalDocuments = %d, want 2", dash.TotalDocuments)
	}
	if dash.TranscribedVideos != 2 {
		t.Errorf("TranscribedVideos = %d, want 2", dash.TranscribedVideos)
	}
	// Pending covers uploaded and transcribing but not error.
	if dash.PendingVideos != 2 {
		t.Errorf("PendingVideos = %d, want 2", dash.PendingVideos)
	}
	if len(dash.RecentProjects) != 3 {
		t.Errorf("RecentProjects = %d entries, want 3", len(dash.RecentProjects))
	}
	if len(dash.RecentVideos) != 5 {
		t.Errorf("RecentVideos = %d entries, want 5", len(dash.RecentVideos))
	}
}

func TestGetDashboardRecentLimit(t *testing.T) {
	videos := make([]models.Video, 8)
	for i := range videos {
		videos[i] = models.Video{ID: string(rune('a' + i)), UserID: "user-1", Status: models.StatusUploaded}
	}

	svc := NewService(
		&countingProjectRepo{},
		&countingVideoRepo{videos: videos},
		&countingDocRepo{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	dash, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if len(dash.RecentVideos) != recentLimit {
		t.Errorf("RecentVideos = %d entries, want %d", len(dash.RecentVideos), recentLimit)
	}
}
