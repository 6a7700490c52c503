// Package classify turns a recording into a transcript plus routing intent.
package classify

import (
	"context"
	"fmt"
	"log/slog"

	"voicedeck/internal/domain/services"
	"voicedeck/internal/service/keyword"
)

const (
	// transcriptionLanguage is the fixed target language for speech-to-text.
	transcriptionLanguage = "fr"

	// transcriptionHint primes the speech-to-text model with the narration
	// convention: recordings open with a project name or a new-idea cue.
	transcriptionHint = "The first spoken word or phrase is usually the project name, or 'nouvelle idée' / 'new idea'."

	extractionSystem = "You extract routing information from video narration transcripts. " +
		"Reply with a single JSON object and nothing else: " +
		`{"firstKeyword": string, "isNewIdea": boolean, "suggestedProjectName": string or null}. ` +
		"firstKeyword is the opening phrase of the transcript. isNewIdea is true when the " +
		"recording opens with a new-idea cue such as 'nouvelle idée' or 'new idea'. " +
		"suggestedProjectName is the project the narration belongs to, or null when isNewIdea is true."
)

// Classifier implements services.Classifier using a speech-to-text
// collaborator and a text-understanding collaborator, with the deterministic
// keyword extractor as the parse-failure fallback.
type Classifier struct {
	transcriber services.Transcriber
	chat        services.ChatModel
	logger      *slog.Logger
}

// New creates a Classifier.
func New(transcriber services.Transcriber, chat services.ChatModel, logger *slog.Logger) *Classifier {
	return &Classifier{
		transcriber: transcriber,
		chat:        chat,
		logger:      logger,
	}
}

// Classify transcribes the media and extracts {firstKeyword, isNewIdea,
// suggestedProjectName}. Collaborator failures propagate unmodified; only an
// unparseable extraction response is recovered, via keyword.Extract.
func (c *Classifier) Classify(ctx context.Context, mediaURL string) (*services.Classification, error) {
	text, err := c.transcriber.Transcribe(ctx, mediaURL, transcriptionLanguage, transcriptionHint)
	if err != nil {
		return nil, fmt.Errorf("transcribe media: %w", err)
	}

	raw, err := c.chat.Generate(ctx, extractionSystem, text)
	if err != nil {
		return nil, fmt.Errorf("extract intent: %w", err)
	}

	if ext, ok := parseExtraction(raw); ok {
		suggested := ext.SuggestedProjectName
		if ext.IsNewIdea {
			suggested = nil
		}
		return &services.Classification{
			Text:                 text,
			FirstKeyword:         ext.FirstKeyword,
			IsNewIdea:            ext.IsNewIdea,
			SuggestedProjectName: suggested,
		}, nil
	}

	// Parse failure is the one locally recovered error: run the
	// deterministic heuristic on the transcript instead.
	c.logger.Warn("intent extraction returned no parseable JSON, using keyword fallback")

	fallback := keyword.Extract(text)
	classification := &services.Classification{
		Text:         text,
		FirstKeyword: fallback.Keyword,
		IsNewIdea:    fallback.IsNewIdea,
	}
	if !fallback.IsNewIdea && fallback.Keyword != "" {
		kw := fallback.Keyword
		classification.SuggestedProjectName = &kw
	}

	return classification, nil
}
