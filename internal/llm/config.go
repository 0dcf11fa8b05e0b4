// Package llm provides centralized LLM configuration and client abstractions.
// Text generation and embeddings are optional capabilities: callers check
// availability once at construction and degrade when a provider is missing.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: parsing, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning such as curriculum planning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider
	ProviderOpenAI Provider = "openai"
	// ProviderHuggingFace is the HuggingFace inference API
	ProviderHuggingFace Provider = "huggingface"
	// ProviderWebUI is a local text-generation-webui instance
	ProviderWebUI Provider = "webui"
	// ProviderNone disables text generation
	ProviderNone Provider = "none"
)

const (
	defaultHuggingFaceURL = "https://api-inference.huggingface.co/models"
	defaultWebUIURL       = "http://localhost:5000"

	// DefaultTimeout bounds a single generation call
	DefaultTimeout = 120 * time.Second
	// DefaultHealthTimeout bounds availability probes
	DefaultHealthTimeout = 3 * time.Second
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// BaseURL overrides the provider endpoint (HTTP providers and OpenAI-compatible servers)
	BaseURL       string
	Timeout       time.Duration
	HealthTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// ConfigFor returns the default configuration for a provider
func ConfigFor(provider Provider) *Config {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIConfig()
	case ProviderHuggingFace:
		return DefaultHuggingFaceConfig()
	case ProviderWebUI:
		return DefaultWebUIConfig()
	case ProviderNone:
		return &Config{Provider: ProviderNone, Models: map[ModelTier]string{}}
	default:
		return DefaultGeminiConfig()
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Timeout:       DefaultTimeout,
		HealthTimeout: DefaultHealthTimeout,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4-turbo",
		},
		Timeout:       DefaultTimeout,
		HealthTimeout: DefaultHealthTimeout,
	}
}

// DefaultHuggingFaceConfig returns the default HuggingFace configuration
func DefaultHuggingFaceConfig() *Config {
	return &Config{
		Provider: ProviderHuggingFace,
		Models: map[ModelTier]string{
			TierStandard: "gpt2",
		},
		BaseURL:       defaultHuggingFaceURL,
		Timeout:       DefaultTimeout,
		HealthTimeout: DefaultHealthTimeout,
	}
}

// DefaultWebUIConfig returns the default text-generation-webui configuration.
// The server decides which model is loaded, so no tiers are configured.
func DefaultWebUIConfig() *Config {
	return &Config{
		Provider:      ProviderWebUI,
		Models:        map[ModelTier]string{},
		BaseURL:       defaultWebUIURL,
		Timeout:       DefaultTimeout,
		HealthTimeout: DefaultHealthTimeout,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// WithAllModels returns a new Config that uses model for every tier
func (c *Config) WithAllModels(model string) *Config {
	out := c.WithModel(TierLite, model)
	out.Models[TierStandard] = model
	out.Models[TierAdvanced] = model
	return out
}

func (c *Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c *Config) healthTimeout() time.Duration {
	if c.HealthTimeout > 0 {
		return c.HealthTimeout
	}
	return DefaultHealthTimeout
}
