package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier (for direct access if needed)
	GetModel(tier ModelTier) string
	// Provider identifies the backend
	Provider() Provider
	// Close releases any resources held by the client
	Close() error
}

// Status reports whether text generation is available
type Status struct {
	Available bool     `json:"available"`
	Provider  Provider `json:"provider"`
	InitError string   `json:"init_error,omitempty"`
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	case ProviderHuggingFace:
		return NewHuggingFaceClient(config, apiKey)
	case ProviderWebUI:
		return NewWebUIClient(ctx, config)
	case ProviderNone:
		return nil, fmt.Errorf("text generation disabled")
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// Open constructs a client and never fails: when the provider cannot be
// initialized the returned client is nil and the status carries the reason.
func Open(ctx context.Context, config *Config, apiKey string, logger *slog.Logger) (Client, Status) {
	if logger == nil {
		logger = slog.Default()
	}
	if config == nil {
		config = DefaultConfig()
	}

	status := Status{Provider: config.Provider}
	client, err := NewClient(ctx, config, apiKey)
	if err != nil {
		status.InitError = err.Error()
		logger.Warn("text generation unavailable",
			slog.String("provider", string(config.Provider)),
			slog.Any("error", err))
		return nil, status
	}

	status.Available = true
	return client, status
}
