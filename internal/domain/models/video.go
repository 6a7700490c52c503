package models

import (
	"time"
)

// VideoStatus tracks a video through the transcription pipeline.
//
// uploading -> uploaded -> transcribing -> {transcribed, error}
//
// error is terminal for automatic flows; a manual transcription request
// re-enters transcribing from error.
type VideoStatus string

const (
	StatusUploading    VideoStatus = "uploading"
	StatusUploaded     VideoStatus = "uploaded"
	StatusTranscribing VideoStatus = "transcribing"
	StatusTranscribed  VideoStatus = "transcribed"
	StatusError        VideoStatus = "error"
)

// Pending reports whether the video is still waiting on transcription.
func (s VideoStatus) Pending() bool {
	return s == StatusUploaded || s == StatusTranscribing
}

type Video struct {
	ID              string      `json:"id" db:"id"`
	UserID          string      `json:"user_id" db:"user_id"`
	ProjectID       string      `json:"project_id" db:"project_id"`
	StorageURL      string      `json:"storage_url" db:"storage_url"`
	StorageKey      string      `json:"storage_key" db:"storage_key"`
	DurationSeconds *float64    `json:"duration_seconds,omitempty" db:"duration_seconds"`
	SizeBytes       *int64      `json:"size_bytes,omitempty" db:"size_bytes"`
	MimeType        *string     `json:"mime_type,omitempty" db:"mime_type"`
	Transcript      *string     `json:"transcript,omitempty" db:"transcript"`
	Keyword         *string     `json:"keyword,omitempty" db:"keyword"`
	Status          VideoStatus `json:"status" db:"status"`
	ErrorMessage    *string     `json:"error_message,omitempty" db:"error_message"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}
