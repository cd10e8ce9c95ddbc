package driven

import "context"

// CompletionService provides language model text completion.
// This is an optional service - when nil, or when a call fails, answers
// degrade to a static fallback with no citations.
//
// Implementations may include:
//   - OpenAI (GPT-4o family)
//   - OpenAI-compatible proxies (aipipe, Azure OpenAI)
//   - Ollama (local models)
type CompletionService interface {
	// Complete produces a text completion for the assembled prompt.
	// Failures wrap domain.ErrUpstream.
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to verify connectivity.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures text completion behaviour.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// OCRService extracts text from an attached image.
// Optional: failures return an empty string and never block the pipeline.
type OCRService interface {
	// ExtractText returns the text visible in the image.
	ExtractText(ctx context.Context, image []byte) (string, error)

	// Close releases resources.
	Close() error
}
