package classify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"voicedeck/internal/domain"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, url, language, promptHint string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeChat struct {
	response string
	err      error
	calls    int
}

func (f *fakeChat) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassify_ParsedResponse(t *testing.T) {
	transcriber := &fakeTranscriber{text: "Phoenix est un projet de refonte."}
	chat := &fakeChat{response: `Here you go: {"firstKeyword": "phoenix", "isNewIdea": false, "suggestedProjectName": "Phoenix"}`}

	c := New(transcriber, chat, discardLogger())
	got, err := c.Classify(context.Background(), "https://media/clip.mp4")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	if got.Text != transcriber.text {
		t.Errorf("Text = %q, want transcript", got.Text)
	}
	if got.FirstKeyword != "phoenix" {
		t.Errorf("FirstKeyword = %q, want %q", got.FirstKeyword, "phoenix")
	}
	if got.IsNewIdea {
		t.Error("IsNewIdea = true, want false")
	}
	if got.SuggestedProjectName == nil || *got.SuggestedProjectName != "Phoenix" {
		t.Errorf("SuggestedProjectName = %v, want Phoenix", got.SuggestedProjectName)
	}
}

func TestClassify_NewIdeaClearsSuggestion(t *testing.T) {
	transcriber := &fakeTranscriber{text: "Nouvelle idée, une app de recettes."}
	chat := &fakeChat{response: `{"firstKeyword": "nouvelle idée", "isNewIdea": true, "suggestedProjectName": "Recettes"}`}

	c := New(transcriber, chat, discardLogger())
	got, err := c.Classify(context.Background(), "https://media/clip.mp4")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	if !got.IsNewIdea {
		t.Error("IsNewIdea = false, want true")
	}
	if got.SuggestedProjectName != nil {
		t.Errorf("SuggestedProjectName = %q, want nil for new idea", *got.SuggestedProjectName)
	}
}

func TestClassify_IsNewIdeaCoercion(t *testing.T) {
	transcriber := &fakeTranscriber{text: "new idea about onboarding"}
	chat := &fakeChat{response: `{"firstKeyword": "new idea", "isNewIdea": "true"}`}

	c := New(transcriber, chat, discardLogger())
	got, err := c.Classify(context.Background(), "https://media/clip.mp4")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if !got.IsNewIdea {
		t.Error("string \"true\" was not coerced to boolean")
	}
}

func TestClassify_FallbackOnUnparseableResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no JSON at all", "I could not produce JSON, sorry."},
		{"malformed object", `{"firstKeyword": "phoenix", "isNewIdea": `},
		{"missing firstKeyword", `{"isNewIdea": false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcriber := &fakeTranscriber{text: "Phoenix est un projet de refonte."}
			chat := &fakeChat{response: tt.response}

			c := New(transcriber, chat, discardLogger())
			got, err := c.Classify(context.Background(), "https://media/clip.mp4")
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}

			if got.FirstKeyword != "phoenix est un" {
				t.Errorf("fallback FirstKeyword = %q, want %q", got.FirstKeyword, "phoenix est un")
			}
			if got.IsNewIdea {
				t.Error("fallback IsNewIdea = true, want false")
			}
			if got.SuggestedProjectName == nil || *got.SuggestedProjectName != "phoenix est un" {
				t.Errorf("fallback SuggestedProjectName = %v, want keyword", got.SuggestedProjectName)
			}
		})
	}
}

func TestClassify_FallbackNewIdea(t *testing.T) {
	transcriber := &fakeTranscriber{text: "Nouvelle idée, je voudrais un tracker."}
	chat := &fakeChat{response: "no json here"}

	c := New(transcriber, chat, discardLogger())
	got, err := c.Classify(context.Background(), "https://media/clip.mp4")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	if !got.IsNewIdea {
		t.Error("fallback IsNewIdea = false, want true")
	}
	if got.SuggestedProjectName != nil {
		t.Errorf("fallback SuggestedProjectName = %v, want nil", got.SuggestedProjectName)
	}
}

func TestClassify_TranscriberFailurePropagates(t *testing.T) {
	transcriber := &fakeTranscriber{err: &domain.UpstreamError{Message: "speech-to-text unreachable"}}
	chat := &fakeChat{}

	c := New(transcriber, chat, discardLogger())
	_, err := c.Classify(context.Background(), "https://media/clip.mp4")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
	if chat.calls != 0 {
		t.Errorf("chat model called %d times after transcription failure, want 0", chat.calls)
	}
}

func TestClassify_ChatFailurePropagates(t *testing.T) {
	transcriber := &fakeTranscriber{text: "Phoenix est un projet."}
	chat := &fakeChat{err: &domain.UnconfiguredError{Message: "missing API key"}}

	c := New(transcriber, chat, discardLogger())
	_, err := c.Classify(context.Background(), "https://media/clip.mp4")
	if !errors.Is(err, domain.ErrUnconfigured) {
		t.Errorf("err = %v, want ErrUnconfigured", err)
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"prose around object", `sure: {"a": 1} done`, `{"a": 1}`, true},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, true},
		{"brace inside string", `{"a": "}"}`, `{"a": "}"}`, true},
		{"unterminated", `{"a": 1`, "", false},
		{"no braces", `nothing here`, "", false},
		{"invalid json in braces", `{not json}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstJSONObject(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("firstJSONObject(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}
