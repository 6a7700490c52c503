package synthesize

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
)

type fakeProjectRepo struct {
	project *models.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *models.Project) error { return nil }
func (f *fakeProjectRepo) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	if f.project != nil && f.project.ID == id && f.project.UserID == userID {
		return f.project, nil
	}
	return nil, &domain.NotFoundError{Message: "project not found"}
}
func (f *fakeProjectRepo) GetByName(ctx context.Context, userID, name string) (*models.Project, error) {
	return nil, &domain.NotFoundError{Message: "not found"}
}
func (f *fakeProjectRepo) GetNewIdeas(ctx context.Context, userID string) (*models.Project, error) {
	return nil, &domain.NotFoundError{Message: "not found"}
}
func (f *fakeProjectRepo) List(ctx context.Context, userID string) ([]models.Project, error) {
	return nil, nil
}
func (f *fakeProjectRepo) Update(ctx context.Context, p *models.Project) error { return nil }
func (f *fakeProjectRepo) Delete(ctx context.Context, id, userID string) error { return nil }
func (f *fakeProjectRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}
func (f *fakeProjectRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.Project, error) {
	return nil, nil
}

type fakeVideoRepo struct {
	transcribed []models.Video
}

func (f *fakeVideoRepo) Create(ctx context.Context, v *models.Video) error { return nil }
func (f *fakeVideoRepo) GetByID(ctx context.Context, id, userID string) (*models.Video, error) {
	return nil, &domain.NotFoundError{Message: "not found"}
}
func (f *fakeVideoRepo) List(ctx context.Context, userID, projectID string) ([]models.Video, error) {
	return nil, nil
}
func (f *fakeVideoRepo) ListTranscribed(ctx context.Context, projectID string) ([]models.Video, error) {
	return f.transcribed, nil
}
func (f *fakeVideoRepo) UpdateStatus(ctx context.Context, id string, status models.VideoStatus, errorMessage *string) error {
	return nil
}
func (f *fakeVideoRepo) Update(ctx context.Context, v *models.Video) error { return nil }
func (f *fakeVideoRepo) Delete(ctx context.Context, id, userID string) error {
	return nil
}
func (f *fakeVideoRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}
func (f *fakeVideoRepo) CountByStatus(ctx context.Context, userID string, statuses ...models.VideoStatus) (int, error) {
	return 0, nil
}
func (f *fakeVideoRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.Video, error) {
	return nil, nil
}

type fakeDocRepo struct {
	mu      sync.Mutex
	doc     *models.Document
	creates int
	updates int
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc != nil && f.doc.ProjectID == doc.ProjectID {
		return &domain.ConflictError{Message: "document already exists", ResourceType: "document", ResourceID: f.doc.ID}
	}
	cp := *doc
	f.doc = &cp
	f.creates++
	return nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc != nil && f.doc.ID == id && f.doc.UserID == userID {
		cp := *f.doc
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: "document not found"}
}

func (f *fakeDocRepo) GetByProject(ctx context.Context, projectID, userID string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc != nil && f.doc.ProjectID == projectID && f.doc.UserID == userID {
		cp := *f.doc
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: "document not found"}
}

func (f *fakeDocRepo) Update(ctx context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *doc
	f.doc = &cp
	f.updates++
	return nil
}

func (f *fakeDocRepo) Delete(ctx context.Context, id, userID string) error { return nil }
func (f *fakeDocRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

// scriptedChat returns queued responses in order and counts calls.
type scriptedChat struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *scriptedChat) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, userPrompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("scriptedChat: no response queued")
}

func transcript(s string) *string { return &s }

func testFixtures(transcripts ...string) (*fakeProjectRepo, *fakeVideoRepo, *fakeDocRepo) {
	project := &models.Project{ID: "p-1", UserID: "user-1", Name: "Phoenix"}
	videos := make([]models.Video, len(transcripts))
	for i, tr := range transcripts {
		videos[i] = models.Video{
			ID:         "v-" + tr[:1],
			ProjectID:  "p-1",
			UserID:     "user-1",
			Status:     models.StatusTranscribed,
			Transcript: transcript(tr),
		}
	}
	return &fakeProjectRepo{project: project}, &fakeVideoRepo{transcribed: videos}, &fakeDocRepo{}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSynthesize_NoContentMakesNoExternalCalls(t *testing.T) {
	projects, videos, docs := testFixtures()
	chat := &scriptedChat{}

	s := New(projects, videos, docs, chat, discardLogger())
	_, err := s.Synthesize(context.Background(), "p-1", "user-1")

	if !errors.Is(err, domain.ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
	if chat.calls != 0 {
		t.Errorf("chat called %d times, want 0", chat.calls)
	}
	if docs.creates != 0 || docs.updates != 0 {
		t.Error("document was persisted despite NoContent")
	}
}

func TestSynthesize_CreatesVersionOne(t *testing.T) {
	projects, videos, docs := testFixtures("alpha transcript", "beta transcript")
	chat := &scriptedChat{responses: []string{
		"# Phoenix Redesign\n\n## Executive summary\n...",
		"Covers the redesign goals and first two recordings.",
	}}

	s := New(projects, videos, docs, chat, discardLogger())
	doc, err := s.Synthesize(context.Background(), "p-1", "user-1")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}

	if doc.Version != 1 {
		t.Errorf("Version = %d, want 1", doc.Version)
	}
	if doc.Title != "Phoenix Redesign" {
		t.Errorf("Title = %q, want heading text", doc.Title)
	}
	if doc.VideosIncluded != 2 {
		t.Errorf("VideosIncluded = %d, want 2", doc.VideosIncluded)
	}
	if doc.VersionNotes != "Covers the redesign goals and first two recordings." {
		t.Errorf("VersionNotes = %q", doc.VersionNotes)
	}
	if chat.calls != 2 {
		t.Errorf("chat calls = %d, want 2 (content + summary)", chat.calls)
	}
	// Create mode must feed every transcript to the generator.
	if !strings.Contains(chat.prompts[0], "alpha transcript") || !strings.Contains(chat.prompts[0], "beta transcript") {
		t.Error("create prompt is missing transcripts")
	}
}

func TestSynthesize_UpdateIncrementsVersionByOne(t *testing.T) {
	projects, videos, docs := testFixtures("alpha transcript")
	chat := &scriptedChat{responses: []string{
		"# Phoenix\ncontent v1", "notes v1",
		"# Phoenix\ncontent v2", "notes v2",
	}}

	s := New(projects, videos, docs, chat, discardLogger())
	first, err := s.Synthesize(context.Background(), "p-1", "user-1")
	if err != nil {
		t.Fatalf("first Synthesize: %v", err)
	}

	// A new video lands before the second synthesis.
	videos.transcribed = append(videos.transcribed, models.Video{
		ID: "v-2", ProjectID: "p-1", UserID: "user-1",
		Status: models.StatusTranscribed, Transcript: transcript("gamma transcript"),
	})

	second, err := s.Synthesize(context.Background(), "p-1", "user-1")
	if err != nil {
		t.Fatalf("second Synthesize: %v", err)
	}

	if first.Version != 1 || second.Version != 2 {
		t.Errorf("versions = %d, %d; want 1, 2", first.Version, second.Version)
	}
	if second.VideosIncluded != 2 {
		t.Errorf("VideosIncluded = %d, want recount of 2", second.VideosIncluded)
	}
	if second.VersionNotes != "notes v2" {
		t.Errorf("VersionNotes = %q, want fresh summary", second.VersionNotes)
	}
	// Update mode supplies the prior content and the full corpus.
	updateCall := chat.prompts[2]
	if !strings.Contains(updateCall, "content v1") {
		t.Error("update prompt is missing current document content")
	}
	if !strings.Contains(updateCall, "alpha transcript") || !strings.Contains(updateCall, "gamma transcript") {
		t.Error("update prompt must include all transcripts, not only new ones")
	}
}

func TestSynthesize_TitleFallbackWithoutHeading(t *testing.T) {
	projects, videos, docs := testFixtures("alpha transcript")
	chat := &scriptedChat{responses: []string{"No heading here, just prose.", "short notes"}}

	s := New(projects, videos, docs, chat, discardLogger())
	doc, err := s.Synthesize(context.Background(), "p-1", "user-1")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}

	want := "Presentation document – Phoenix"
	if doc.Title != want {
		t.Errorf("Title = %q, want %q", doc.Title, want)
	}
}

func TestSynthesize_SummaryFailureAbortsEntirely(t *testing.T) {
	projects, videos, docs := testFixtures("alpha transcript")
	chat := &scriptedChat{
		responses: []string{"# Phoenix\ncontent", ""},
		errs:      []error{nil, &domain.UpstreamError{Message: "summary failed"}},
	}

	s := New(projects, videos, docs, chat, discardLogger())
	_, err := s.Synthesize(context.Background(), "p-1", "user-1")

	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if docs.creates != 0 || docs.updates != 0 {
		t.Error("partial success persisted a document; content + summary must be atomic")
	}
}

func TestSynthesize_ContentFailurePropagates(t *testing.T) {
	projects, videos, docs := testFixtures("alpha transcript")
	chat := &scriptedChat{errs: []error{&domain.UpstreamError{Message: "generation failed"}}}

	s := New(projects, videos, docs, chat, discardLogger())
	_, err := s.Synthesize(context.Background(), "p-1", "user-1")

	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if chat.calls != 1 {
		t.Errorf("chat calls = %d, want 1 (no summary attempt)", chat.calls)
	}
	if docs.creates != 0 {
		t.Error("document persisted despite generation failure")
	}
}

func TestSynthesize_UnknownProject(t *testing.T) {
	projects, videos, docs := testFixtures("alpha transcript")
	chat := &scriptedChat{}

	s := New(projects, videos, docs, chat, discardLogger())
	_, err := s.Synthesize(context.Background(), "missing", "user-1")

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if chat.calls != 0 {
		t.Errorf("chat called %d times for missing project, want 0", chat.calls)
	}
}
