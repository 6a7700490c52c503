// Package video sequences the upload and transcription pipeline and owns the
// video status state machine.
package video

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/repositories"
	"voicedeck/internal/domain/services"
	"voicedeck/internal/service/resolve"
)

// maxUploadBytes caps a single recording.
const maxUploadBytes = 200 << 20

type videoService struct {
	videoRepo   repositories.VideoRepository
	projectRepo repositories.ProjectRepository
	classifier  services.Classifier
	resolver    *resolve.Resolver
	storage     services.ObjectStorage
	logger      *slog.Logger
}

// NewService creates the video service.
func NewService(
	videoRepo repositories.VideoRepository,
	projectRepo repositories.ProjectRepository,
	classifier services.Classifier,
	resolver *resolve.Resolver,
	storage services.ObjectStorage,
	logger *slog.Logger,
) services.VideoService {
	return &videoService{
		videoRepo:   videoRepo,
		projectRepo: projectRepo,
		classifier:  classifier,
		resolver:    resolver,
		storage:     storage,
		logger:      logger,
	}
}

// Upload stores the media bytes and creates the video row, provisionally
// assigned to the user's new-ideas bucket with status uploaded.
func (s *videoService) Upload(ctx context.Context, req *services.UploadVideoRequest) (*models.Video, error) {
	if err := validateUpload(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	bucket, err := s.resolver.GetOrCreateNewIdeas(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	key := storageKey(req.UserID, id, req.Filename)

	url, err := s.storage.Put(ctx, key, req.Data, req.MimeType)
	if err != nil {
		return nil, err
	}

	size := int64(len(req.Data))
	mime := req.MimeType
	video := &models.Video{
		ID:              id,
		UserID:          req.UserID,
		ProjectID:       bucket.ID,
		StorageURL:      url,
		StorageKey:      key,
		DurationSeconds: req.DurationSeconds,
		SizeBytes:       &size,
		MimeType:        &mime,
		Status:          models.StatusUploaded,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	s.logger.Info("video uploaded",
		"id", video.ID,
		"user_id", req.UserID,
		"project_id", bucket.ID,
		"size_bytes", size,
	)

	return video, nil
}

// Transcribe runs the classification pipeline for one video. The status
// moves to transcribing before any external call so a crash mid-call leaves
// an inspectable non-terminal state. On failure the status is set to error
// with the captured message and the failure is returned, not swallowed.
// A caller may re-invoke on an errored video, which re-enters transcribing.
func (s *videoService) Transcribe(ctx context.Context, id, userID string) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.UpdateStatus(ctx, id, models.StatusTranscribing, nil); err != nil {
		return nil, err
	}

	classification, err := s.classifier.Classify(ctx, video.StorageURL)
	if err != nil {
		return nil, s.failTranscription(ctx, id, err)
	}

	projectID, err := s.resolver.Resolve(ctx, userID, video.ProjectID, classification)
	if err != nil {
		return nil, s.failTranscription(ctx, id, err)
	}

	// Transcript, keyword, project assignment and status land together.
	video.ProjectID = projectID
	video.Transcript = &classification.Text
	video.Keyword = &classification.FirstKeyword
	video.Status = models.StatusTranscribed
	video.ErrorMessage = nil
	video.UpdatedAt = time.Now()

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, s.failTranscription(ctx, id, err)
	}

	s.logger.Info("video transcribed",
		"id", id,
		"project_id", projectID,
		"keyword", classification.FirstKeyword,
		"is_new_idea", classification.IsNewIdea,
	)

	return video, nil
}

// failTranscription records the failure on the video and returns the
// original error so the caller sees it too.
func (s *videoService) failTranscription(ctx context.Context, id string, cause error) error {
	msg := cause.Error()
	if err := s.videoRepo.UpdateStatus(ctx, id, models.StatusError, &msg); err != nil {
		s.logger.Error("failed to record transcription error", "id", id, "error", err)
	}

	s.logger.Warn("transcription failed", "id", id, "error", msg)

	return cause
}

func (s *videoService) GetVideo(ctx context.Context, id, userID string) (*models.Video, error) {
	return s.videoRepo.GetByID(ctx, id, userID)
}

func (s *videoService) ListVideos(ctx context.Context, userID, projectID string) ([]models.Video, error) {
	return s.videoRepo.List(ctx, userID, projectID)
}

// UpdateVideo reassigns the video or patches metadata. Reassignment is
// permitted from any status and never alters the status itself.
func (s *videoService) UpdateVideo(ctx context.Context, id, userID string, req *services.UpdateVideoRequest) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		// The target project must belong to the same user.
		if _, err := s.projectRepo.GetByID(ctx, *req.ProjectID, userID); err != nil {
			return nil, err
		}
		video.ProjectID = *req.ProjectID
	}
	if req.DurationSeconds != nil {
		video.DurationSeconds = req.DurationSeconds
	}
	video.UpdatedAt = time.Now()

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, id, userID string) error {
	video, err := s.videoRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	// Storage cleanup is best effort; the row is already gone.
	if err := s.storage.Remove(ctx, video.StorageKey); err != nil {
		s.logger.Warn("failed to remove media from storage", "key", video.StorageKey, "error", err)
	}

	return nil
}

func validateUpload(req *services.UploadVideoRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Filename, validation.Required),
		validation.Field(&req.MimeType, validation.Required, validation.By(videoMime)),
		validation.Field(&req.Data, validation.Required, validation.Length(1, maxUploadBytes)),
	)
}

func videoMime(value interface{}) error {
	mime, _ := value.(string)
	if !strings.HasPrefix(mime, "video/") && !strings.HasPrefix(mime, "audio/") {
		return fmt.Errorf("unsupported media type %q", mime)
	}
	return nil
}

func storageKey(userID, videoID, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("videos/%s/%s%s", userID, videoID, ext)
}
