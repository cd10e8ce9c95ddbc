// Package vision extracts text from images using a vision-capable chat
// model behind the OpenAI chat completions API. OCR is best-effort: any
// failure is reported to the caller, who proceeds without image text.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opencourse-labs/virta/internal/core/ports/driven"
)

// Ensure OCRService implements the interface.
var _ driven.OCRService = (*OCRService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 20 * time.Second

	// maxImageBytes rejects attachments too large to ship inline.
	maxImageBytes = 4 << 20
)

// extractionPrompt asks the model for a plain transcription.
const extractionPrompt = "Transcribe all text visible in this image. " +
	"Return only the text, with no commentary. If there is no text, return an empty response."

// Config holds configuration for the vision OCR service.
type Config struct {
	// APIKey is the API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the vision-capable model to use (default: gpt-4o-mini).
	Model string

	// Timeout bounds each request (default: 20s).
	Timeout time.Duration
}

// OCRService extracts text from images via a vision chat request.
type OCRService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// visionRequest is the multimodal /chat/completions request format.
type visionRequest struct {
	Model     string          `json:"model"`
	Messages  []visionMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type visionMessage struct {
	Role    string       `json:"role"`
	Content []visionPart `json:"content"`
}

type visionPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionImageURL struct {
	URL string `json:"url"`
}

// visionResponse mirrors the chat completions response shape.
type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOCRService creates a new vision OCR service.
func NewOCRService(cfg Config) (*OCRService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &OCRService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// ExtractText returns the text visible in the image.
func (s *OCRService) ExtractText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", nil
	}
	if len(image) > maxImageBytes {
		return "", fmt.Errorf("vision: image too large (%d bytes)", len(image))
	}

	dataURL := "data:" + sniffMIME(image) + ";base64," + base64.StdEncoding.EncodeToString(image)

	reqBody := visionRequest{
		Model: s.model,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []visionPart{
					{Type: "text", Text: extractionPrompt},
					{Type: "image_url", ImageURL: &visionImageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens: 500,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var visionResp visionResponse
	if err := json.Unmarshal(body, &visionResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if visionResp.Error != nil {
		return "", fmt.Errorf("vision error: %s", visionResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(visionResp.Choices) == 0 {
		return "", fmt.Errorf("vision: no response choices returned")
	}

	return strings.TrimSpace(visionResp.Choices[0].Message.Content), nil
}

// Close releases resources.
func (s *OCRService) Close() error {
	return nil
}

// sniffMIME guesses the image MIME type from magic bytes, defaulting to
// PNG when unknown.
func sniffMIME(image []byte) string {
	switch {
	case len(image) >= 3 && image[0] == 0xff && image[1] == 0xd8 && image[2] == 0xff:
		return "image/jpeg"
	case len(image) >= 4 && bytes.Equal(image[:4], []byte("\x89PNG")):
		return "image/png"
	case len(image) >= 6 && (bytes.Equal(image[:6], []byte("GIF87a")) || bytes.Equal(image[:6], []byte("GIF89a"))):
		return "image/gif"
	case len(image) >= 12 && bytes.Equal(image[8:12], []byte("WEBP")):
		return "image/webp"
	}
	return "image/png"
}
