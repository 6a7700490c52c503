package services

import (
	"context"

	"voicedeck/internal/domain/models"
)

// UploadVideoRequest carries the media bytes and metadata for one upload.
type UploadVideoRequest struct {
	UserID          string
	Filename        string
	MimeType        string
	Data            []byte
	DurationSeconds *float64
}

// UpdateVideoRequest reassigns a video or patches its metadata. Reassignment
// never touches the transcription status.
type UpdateVideoRequest struct {
	ProjectID       *string  `json:"project_id,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

// VideoService sequences the upload and transcription pipeline and owns the
// video status state machine.
type VideoService interface {
	// Upload stores the media and creates the video row in the user's
	// new-ideas bucket with status uploaded.
	Upload(ctx context.Context, req *UploadVideoRequest) (*models.Video, error)

	// Transcribe runs classification and project resolution for one video.
	// The status moves to transcribing before any external call; on success
	// transcript, keyword, project assignment and status transcribed are
	// persisted together; on failure status error plus the message is
	// persisted and the failure is returned to the caller.
	Transcribe(ctx context.Context, id, userID string) (*models.Video, error)

	GetVideo(ctx context.Context, id, userID string) (*models.Video, error)
	ListVideos(ctx context.Context, userID, projectID string) ([]models.Video, error)
	UpdateVideo(ctx context.Context, id, userID string, req *UpdateVideoRequest) (*models.Video, error)
	DeleteVideo(ctx context.Context, id, userID string) error
}
