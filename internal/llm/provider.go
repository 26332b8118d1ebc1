package llm

import (
	"context"
	"time"

	"github.com/factlens/factlens/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs a single chat completion and returns the raw text
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// CompleteVision runs a completion that includes an image
	CompleteVision(ctx context.Context, req VisionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a text completion
type CompletionRequest struct {
	// System is the system prompt (may be empty)
	System string

	// User is the user message
	User string

	// Model overrides the configured model when non-empty
	Model string

	// Temperature controls sampling; the pipeline runs near-deterministic
	Temperature float32

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int
}

// VisionRequest contains the input for an image-grounded completion
type VisionRequest struct {
	// System is the system prompt
	System string

	// Prompt is the text accompanying the image
	Prompt string

	// ImageDataURL is a data: URL carrying the base64-encoded image
	ImageDataURL string

	// Model overrides the configured vision model when non-empty
	Model string

	Temperature float32
	MaxTokens   int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "anthropic"
	Provider string

	// Model name (provider-specific)
	Model string

	// VisionModel is used for image requests (falls back to Model)
	VisionModel string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		VisionModel: mc.VisionModel,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 25 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

func (c Config) visionModel() string {
	if c.VisionModel != "" {
		return c.VisionModel
	}
	return c.Model
}
