package models

import (
	"time"
)

// Document is the live presentation document of a project. There is at most
// one row per project; each successful resynthesis or manual edit replaces
// the content and bumps Version by exactly 1. Older versions are not kept.
type Document struct {
	ID             string    `json:"id" db:"id"`
	ProjectID      string    `json:"project_id" db:"project_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Title          string    `json:"title" db:"title"`
	Content        string    `json:"content" db:"content"`
	Version        int       `json:"version" db:"version"`
	VersionNotes   string    `json:"version_notes" db:"version_notes"`
	VideosIncluded int       `json:"videos_included" db:"videos_included"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
