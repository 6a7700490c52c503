package models

import (
	"time"
)

// NewIdeasName is the display name of the per-user bucket that holds
// videos not yet classified into a named project.
const NewIdeasName = "New ideas"

// NewIdeasDescription is the fixed description of the new-ideas bucket.
const NewIdeasDescription = "Ideas that have not been assigned to a project yet"

// NewIdeasColor is the fixed display color of the new-ideas bucket.
const NewIdeasColor = "#8B5CF6"

// DefaultProjectColor is used for projects created implicitly by classification.
const DefaultProjectColor = "#3B82F6"

type Project struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	IsNewIdeas   bool      `json:"is_new_ideas" db:"is_new_ideas"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	Color        string    `json:"color" db:"color"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
