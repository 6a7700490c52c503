package resolve

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/services"
)

// fakeProjectRepo is an in-memory ProjectRepository covering the methods the
// resolver touches. It enforces the per-user unique name constraint the way
// the Postgres implementation does.
type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*models.Project
	creates  int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	for _, p := range f.projects {
		if p.UserID == project.UserID && p.Name == project.Name {
			return &domain.ConflictError{
				Message:      "project '" + project.Name + "' already exists",
				ResourceType: "project",
				ResourceID:   p.ID,
			}
		}
	}
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[id]; ok && p.UserID == userID {
		cp := *p
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: "project not found"}
}

func (f *fakeProjectRepo) GetByName(ctx context.Context, userID, name string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.UserID == userID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "project not found"}
}

func (f *fakeProjectRepo) GetNewIdeas(ctx context.Context, userID string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.UserID == userID && p.IsNewIdeas {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "new-ideas project not found"}
}

func (f *fakeProjectRepo) List(ctx context.Context, userID string) ([]models.Project, error) {
	return nil, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeProjectRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeProjectRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.Project, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_NewIdeaCreatesBucketLazily(t *testing.T) {
	repo := newFakeProjectRepo()
	r := New(repo, discardLogger())

	id, err := r.Resolve(context.Background(), "user-1", "current", &services.Classification{IsNewIdea: true})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	bucket, err := repo.GetNewIdeas(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("bucket was not created: %v", err)
	}
	if id != bucket.ID {
		t.Errorf("resolved id = %s, want bucket %s", id, bucket.ID)
	}
	if bucket.Name != models.NewIdeasName || !bucket.IsNewIdeas {
		t.Errorf("bucket = %+v, want fixed new-ideas shape", bucket)
	}

	// A second resolve reuses the bucket.
	id2, err := r.Resolve(context.Background(), "user-1", "current", &services.Classification{IsNewIdea: true})
	if err != nil {
		t.Fatalf("second Resolve returned error: %v", err)
	}
	if id2 != id {
		t.Errorf("second resolve id = %s, want %s", id2, id)
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1", repo.creates)
	}
}

func TestResolve_ExactlyOneBucketUnderConcurrency(t *testing.T) {
	repo := newFakeProjectRepo()
	r := New(repo, discardLogger())

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := r.Resolve(context.Background(), "user-1", "current", &services.Classification{IsNewIdea: true})
			if err != nil {
				t.Errorf("Resolve returned error: %v", err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	buckets := 0
	for _, p := range repo.projects {
		if p.IsNewIdeas {
			buckets++
		}
	}
	if buckets != 1 {
		t.Fatalf("user has %d new-ideas projects, want exactly 1", buckets)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[0] {
			t.Fatalf("resolves disagree: %s vs %s", ids[0], ids[i])
		}
	}
}

func TestResolve_SuggestedNameReusesExisting(t *testing.T) {
	repo := newFakeProjectRepo()
	existing := &models.Project{ID: "p-1", UserID: "user-1", Name: "Phoenix", Color: models.DefaultProjectColor}
	repo.projects[existing.ID] = existing

	r := New(repo, discardLogger())
	name := "Phoenix"
	id, err := r.Resolve(context.Background(), "user-1", "current", &services.Classification{SuggestedProjectName: &name})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != "p-1" {
		t.Errorf("resolved id = %s, want p-1", id)
	}
	if repo.creates != 0 {
		t.Errorf("creates = %d, want 0", repo.creates)
	}
}

func TestResolve_SuggestedNameIsCaseSensitive(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.projects["p-1"] = &models.Project{ID: "p-1", UserID: "user-1", Name: "Phoenix"}

	r := New(repo, discardLogger())
	name := "phoenix"
	id, err := r.Resolve(context.Background(), "user-1", "current", &services.Classification{SuggestedProjectName: &name})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id == "p-1" {
		t.Error("lowercase suggestion matched differently-cased project; matching must be exact")
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1 for the new lowercase project", repo.creates)
	}
}

func TestResolve_NoSignalKeepsCurrentAssignment(t *testing.T) {
	repo := newFakeProjectRepo()
	r := New(repo, discardLogger())

	id, err := r.Resolve(context.Background(), "user-1", "current-project", &services.Classification{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != "current-project" {
		t.Errorf("resolved id = %s, want current assignment", id)
	}
	if repo.creates != 0 {
		t.Errorf("creates = %d, want 0", repo.creates)
	}
}

func TestResolve_CreateConflictRefetches(t *testing.T) {
	repo := newFakeProjectRepo()
	r := New(repo, discardLogger())

	// Pre-create the named project under a different resolver to force the
	// conflict path on the unique constraint.
	name := "Atlas"
	seed := &models.Project{ID: "p-9", UserID: "user-1", Name: name}
	repo.projects[seed.ID] = seed

	id, err := r.Resolve(context.Background(), "user-1", "current", &services.Classification{SuggestedProjectName: &name})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != "p-9" {
		t.Errorf("resolved id = %s, want existing p-9", id)
	}
}

func TestResolve_BucketsAreScopedPerUser(t *testing.T) {
	repo := newFakeProjectRepo()
	r := New(repo, discardLogger())

	id1, err := r.Resolve(context.Background(), "user-1", "", &services.Classification{IsNewIdea: true})
	if err != nil {
		t.Fatalf("Resolve user-1: %v", err)
	}
	id2, err := r.Resolve(context.Background(), "user-2", "", &services.Classification{IsNewIdea: true})
	if err != nil {
		t.Fatalf("Resolve user-2: %v", err)
	}

	if id1 == id2 {
		t.Error("two users share a new-ideas bucket")
	}
}
