// Package openai implements the speech-to-text and image-generation
// collaborators on the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"voicedeck/internal/domain"
)

const (
	transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"
	imageURL         = "https://api.openai.com/v1/images/generations"

	transcriptionModel = "whisper-1"
	imageModel         = "dall-e-3"
	imageSize          = "1024x1024"

	// Transcription downloads the media first, so the timeout covers
	// both the fetch and the API round trip.
	requestTimeout = 120 * time.Second
)

type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Transcribe fetches the media at mediaURL and runs it through Whisper.
// The language code and prompt hint bias the recognition but are optional.
func (c *Client) Transcribe(ctx context.Context, mediaURL, language, promptHint string) (string, error) {
	if c.apiKey == "" {
		return "", &domain.UnconfiguredError{Message: "openai API key is not configured"}
	}

	media, err := c.fetchMedia(ctx, mediaURL)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", path.Base(mediaURL))
	if err != nil {
		return "", fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := part.Write(media); err != nil {
		return "", fmt.Errorf("failed to write form file: %w", err)
	}

	if err := writer.WriteField("model", transcriptionModel); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if promptHint != "" {
		if err := writer.WriteField("prompt", promptHint); err != nil {
			return "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", transcriptionURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("transcription request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var transcription transcriptionResponse
	if err := json.Unmarshal(body, &transcription); err != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("transcription response was not valid JSON (status %d)", resp.StatusCode)}
	}
	if transcription.Error != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("transcription failed: %s", transcription.Error.Message)}
	}

	return transcription.Text, nil
}

// GenerateImage renders the prompt and returns the hosted image URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &domain.UnconfiguredError{Message: "openai API key is not configured"}
	}

	jsonData, err := json.Marshal(imageRequest{
		Model:  imageModel,
		Prompt: prompt,
		N:      1,
		Size:   imageSize,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", imageURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("image request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var image imageResponse
	if err := json.Unmarshal(body, &image); err != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("image response was not valid JSON (status %d)", resp.StatusCode)}
	}
	if image.Error != nil {
		return "", &domain.UpstreamError{Message: fmt.Sprintf("image generation failed: %s", image.Error.Message)}
	}
	if len(image.Data) == 0 {
		return "", &domain.UpstreamError{Message: "image generation returned no images"}
	}

	return image.Data[0].URL, nil
}

func (c *Client) fetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create media request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("media download failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("media download returned status %d", resp.StatusCode)}
	}

	media, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("media download failed: %v", err)}
	}

	return media, nil
}
