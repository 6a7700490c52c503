package services

import (
	"context"
)

// Classification is the outcome of transcribing and classifying one video.
type Classification struct {
	// Text is the full transcript.
	Text string

	// FirstKeyword is the short leading phrase used for routing.
	FirstKeyword string

	// IsNewIdea reports whether the recording opened with a new-idea cue.
	IsNewIdea bool

	// SuggestedProjectName is the project the video should land in.
	// Nil when IsNewIdea is true or no suggestion could be derived.
	SuggestedProjectName *string
}

// Classifier transcribes a recording and extracts routing intent from it.
type Classifier interface {
	Classify(ctx context.Context, mediaURL string) (*Classification, error)
}

// ProjectResolver maps a classification to a concrete project for the user,
// creating the target project or the new-ideas bucket when necessary.
type ProjectResolver interface {
	// Resolve returns the project ID the video belongs in. currentProjectID
	// is returned unchanged when the classification carries no routing.
	Resolve(ctx context.Context, userID, currentProjectID string, c *Classification) (string, error)
}
