// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/skill-gap-advisor/internal/llm"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, then environment
// variables and CLI flags override them.
type Config struct {
	// Text generation
	LLMProvider       string `json:"llm_provider,omitempty"`        // gemini, openai, huggingface, webui, none
	LLMModel          string `json:"llm_model,omitempty"`           // Model for every tier; empty keeps provider defaults
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`      // Gemini API key
	OpenAIAPIKey      string `json:"openai_api_key,omitempty"`      // OpenAI API key
	HuggingFaceAPIKey string `json:"huggingface_api_key,omitempty"` // HuggingFace inference API token
	HuggingFaceModel  string `json:"huggingface_model,omitempty"`   // HuggingFace model id
	WebUIURL          string `json:"webui_url,omitempty"`           // text-generation-webui base URL

	// Embeddings
	EmbeddingsProvider string `json:"embeddings_provider,omitempty"` // gemini, openai, none
	EmbeddingsModel    string `json:"embeddings_model,omitempty"`    // Embedding model name

	// Video lookup
	YouTubeAPIKey string `json:"youtube_api_key,omitempty"`

	// Data sources
	JobTemplatesPath string `json:"job_templates_path,omitempty"` // JSON registry; empty uses built-in templates
	TaxonomyPath     string `json:"taxonomy_path,omitempty"`      // YAML tables; empty uses built-in tables
	DatabaseURL      string `json:"database_url,omitempty"`       // PostgreSQL URL for the template registry

	// Planning
	WeeklyHours float64 `json:"weekly_hours,omitempty"` // Default weekly study hours
	Level       string  `json:"level,omitempty"`        // Default current level

	// Uploads
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty"`
	AllowedFormats []string `json:"allowed_formats,omitempty"`

	// Timeouts, in seconds
	HealthTimeoutSeconds     int `json:"health_timeout_seconds,omitempty"`
	GenerationTimeoutSeconds int `json:"generation_timeout_seconds,omitempty"`
	VideoTimeoutSeconds      int `json:"video_timeout_seconds,omitempty"`

	// Analysis
	Clusters              int `json:"clusters,omitempty"`               // Thematic groups for missing skills
	EnrichmentConcurrency int `json:"enrichment_concurrency,omitempty"` // Parallel video lookups

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		LLMProvider:              string(llm.ProviderGemini),
		EmbeddingsProvider:       string(llm.ProviderNone),
		WeeklyHours:              5,
		Level:                    "Beginner",
		MaxUploadBytes:           10 << 20,
		AllowedFormats:           []string{".pdf", ".docx", ".doc", ".txt", ".md", ".html"},
		HealthTimeoutSeconds:     3,
		GenerationTimeoutSeconds: 120,
		VideoTimeoutSeconds:      15,
		Clusters:                 3,
		EnrichmentConcurrency:    4,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var (
	llmProviders = map[string]bool{
		string(llm.ProviderGemini): true, string(llm.ProviderOpenAI): true,
		string(llm.ProviderHuggingFace): true, string(llm.ProviderWebUI): true,
		string(llm.ProviderNone): true,
	}
	embeddingProviders = map[string]bool{
		string(llm.ProviderGemini): true, string(llm.ProviderOpenAI): true,
		string(llm.ProviderNone): true,
	}
)

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since every field has a default.
func (c *Config) Validate() error {
	if c.LLMProvider != "" && !llmProviders[strings.ToLower(c.LLMProvider)] {
		return fmt.Errorf("config error: unknown 'llm_provider' %q", c.LLMProvider)
	}
	if c.EmbeddingsProvider != "" && !embeddingProviders[strings.ToLower(c.EmbeddingsProvider)] {
		return fmt.Errorf("config error: unknown 'embeddings_provider' %q", c.EmbeddingsProvider)
	}

	// Validate numeric ranges
	if c.WeeklyHours < 0 {
		return fmt.Errorf("config error: 'weekly_hours' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.Clusters < 0 {
		return fmt.Errorf("config error: 'clusters' must be non-negative")
	}
	if c.EnrichmentConcurrency < 0 {
		return fmt.Errorf("config error: 'enrichment_concurrency' must be non-negative")
	}
	if c.HealthTimeoutSeconds < 0 || c.GenerationTimeoutSeconds < 0 || c.VideoTimeoutSeconds < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.JobTemplatesPath != "" {
		if _, err := os.Stat(c.JobTemplatesPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: job templates file not found: %s", c.JobTemplatesPath)
		}
	}
	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.LLMProvider, defaults.LLMProvider)
	mergeString(&result.LLMModel, defaults.LLMModel)
	mergeString(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	mergeString(&result.OpenAIAPIKey, defaults.OpenAIAPIKey)
	mergeString(&result.HuggingFaceAPIKey, defaults.HuggingFaceAPIKey)
	mergeString(&result.HuggingFaceModel, defaults.HuggingFaceModel)
	mergeString(&result.WebUIURL, defaults.WebUIURL)
	mergeString(&result.EmbeddingsProvider, defaults.EmbeddingsProvider)
	mergeString(&result.EmbeddingsModel, defaults.EmbeddingsModel)
	mergeString(&result.YouTubeAPIKey, defaults.YouTubeAPIKey)
	mergeString(&result.JobTemplatesPath, defaults.JobTemplatesPath)
	mergeString(&result.TaxonomyPath, defaults.TaxonomyPath)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.Level, defaults.Level)

	// Numeric fields: use default if zero
	if result.WeeklyHours == 0 {
		result.WeeklyHours = defaults.WeeklyHours
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	mergeInt(&result.HealthTimeoutSeconds, defaults.HealthTimeoutSeconds)
	mergeInt(&result.GenerationTimeoutSeconds, defaults.GenerationTimeoutSeconds)
	mergeInt(&result.VideoTimeoutSeconds, defaults.VideoTimeoutSeconds)
	mergeInt(&result.Clusters, defaults.Clusters)
	mergeInt(&result.EnrichmentConcurrency, defaults.EnrichmentConcurrency)

	if len(result.AllowedFormats) == 0 {
		result.AllowedFormats = append([]string(nil), defaults.AllowedFormats...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func mergeInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

// ApplyEnv overrides fields from environment variables that are set.
// lookup is usually os.Getenv.
func (c *Config) ApplyEnv(lookup func(string) string) {
	envString := func(key string, dst *string) {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			*dst = v
		}
	}
	envString("LLM_PROVIDER", &c.LLMProvider)
	envString("LLM_MODEL", &c.LLMModel)
	envString("GEMINI_API_KEY", &c.GeminiAPIKey)
	envString("OPENAI_API_KEY", &c.OpenAIAPIKey)
	envString("HUGGINGFACE_API_KEY", &c.HuggingFaceAPIKey)
	envString("HUGGINGFACE_MODEL", &c.HuggingFaceModel)
	envString("WEBUI_URL", &c.WebUIURL)
	envString("EMBEDDINGS_PROVIDER", &c.EmbeddingsProvider)
	envString("EMBEDDINGS_MODEL", &c.EmbeddingsModel)
	envString("YOUTUBE_API_KEY", &c.YouTubeAPIKey)
	envString("JOB_TEMPLATES_PATH", &c.JobTemplatesPath)
	envString("SKILL_TAXONOMY_PATH", &c.TaxonomyPath)
	envString("DATABASE_URL", &c.DatabaseURL)

	if v := lookup("WEEKLY_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.WeeklyHours = f
		}
	}
}

// Provider returns the normalized text-generation provider
func (c *Config) Provider() llm.Provider {
	return llm.Provider(strings.ToLower(c.LLMProvider))
}

// LLMConfig builds the text-generation configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(c.Provider())
	switch {
	case cfg.Provider == llm.ProviderHuggingFace && c.HuggingFaceModel != "":
		cfg = cfg.WithAllModels(c.HuggingFaceModel)
	case c.LLMModel != "" && cfg.Provider != llm.ProviderWebUI:
		cfg = cfg.WithAllModels(c.LLMModel)
	}
	if cfg.Provider == llm.ProviderWebUI && c.WebUIURL != "" {
		cfg.BaseURL = c.WebUIURL
	}
	if c.GenerationTimeoutSeconds > 0 {
		cfg.Timeout = seconds(c.GenerationTimeoutSeconds)
	}
	if c.HealthTimeoutSeconds > 0 {
		cfg.HealthTimeout = seconds(c.HealthTimeoutSeconds)
	}
	return cfg
}

// LLMAPIKey returns the credential for the configured provider
func (c *Config) LLMAPIKey() string {
	return c.apiKeyFor(c.Provider())
}

// EmbeddingConfig builds the embedding configuration
func (c *Config) EmbeddingConfig() llm.EmbeddingConfig {
	provider := llm.Provider(strings.ToLower(c.EmbeddingsProvider))
	if provider == "" {
		provider = llm.ProviderNone
	}
	return llm.EmbeddingConfig{
		Provider: provider,
		Model:    c.EmbeddingsModel,
		APIKey:   c.apiKeyFor(provider),
	}
}

func (c *Config) apiKeyFor(p llm.Provider) string {
	switch p {
	case llm.ProviderGemini:
		return c.GeminiAPIKey
	case llm.ProviderOpenAI:
		return c.OpenAIAPIKey
	case llm.ProviderHuggingFace:
		return c.HuggingFaceAPIKey
	default:
		return ""
	}
}

// VideoTimeout bounds a single video search
func (c *Config) VideoTimeout() time.Duration {
	return seconds(c.VideoTimeoutSeconds)
}

// GenerationTimeout bounds a plan generation call
func (c *Config) GenerationTimeout() time.Duration {
	return seconds(c.GenerationTimeoutSeconds)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
