package services

import (
	"context"
)

// Transcriber is the speech-to-text collaborator. Implementations call an
// external service; the call contract is all the core depends on.
type Transcriber interface {
	// Transcribe converts the media at url to text in the given language.
	// promptHint primes the model with domain context.
	Transcribe(ctx context.Context, url, language, promptHint string) (string, error)
}

// ChatModel is the text-understanding / text-generation collaborator.
type ChatModel interface {
	// Generate returns the model's free-form text response for the given
	// system and user prompts.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageGenerator is the thumbnail-generation collaborator.
type ImageGenerator interface {
	// GenerateImage returns the URL of a generated image for the prompt.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ObjectStorage stores raw media bytes.
type ObjectStorage interface {
	// Put uploads bytes under key and returns the public URL.
	Put(ctx context.Context, key string, data []byte, mimeType string) (string, error)

	// Remove deletes the object under key. Missing objects are not an error.
	Remove(ctx context.Context, key string) error
}
