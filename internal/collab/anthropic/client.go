// Package anthropic implements the text-understanding and text-generation
// collaborator on the Anthropic API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"voicedeck/internal/domain"
)

const defaultMaxTokens = 4096

// Client wraps the Anthropic SDK behind the ChatModel contract.
type Client struct {
	client *anthropic.Client
	model  string
}

// New creates a Client. An empty API key is allowed so the server can start
// without credentials; calls then fail with an UnconfiguredError.
func New(apiKey, model string) *Client {
	if apiKey == "" {
		return &Client{model: model}
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client: &client,
		model:  model,
	}
}

// Generate returns the model's text response for the given prompts.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.client == nil {
		return "", &domain.UnconfiguredError{Message: "anthropic API key is not configured"}
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("anthropic generate: %v", err)}
	}

	var b strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			b.WriteString(content.Text)
		}
	}

	text := b.String()
	if text == "" {
		return "", &domain.UpstreamError{Message: "anthropic generate: response contained no text"}
	}

	return text, nil
}
