package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"github.com/openai/openai-go/v3"
	oaoption "github.com/openai/openai-go/v3/option"
	"google.golang.org/api/option"
)

// Embedder turns texts into dense vectors. The returned slice is aligned with texts.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingConfig selects the embedding backend
type EmbeddingConfig struct {
	Provider Provider
	Model    string
	APIKey   string
	BaseURL  string
}

// Default embedding models per provider
const (
	DefaultGeminiEmbeddingModel = "text-embedding-004"
	DefaultOpenAIEmbeddingModel = "text-embedding-3-small"
)

// NewEmbedder creates an embedder for the configured provider
func NewEmbedder(ctx context.Context, cfg EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiEmbedder(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAIEmbedder(cfg)
	case ProviderNone, "":
		return nil, fmt.Errorf("embeddings disabled")
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.Provider)
	}
}

// OpenEmbedder returns nil when embeddings cannot be initialized; callers then
// fall back to lexical matching only.
func OpenEmbedder(ctx context.Context, cfg EmbeddingConfig, logger *slog.Logger) Embedder {
	if logger == nil {
		logger = slog.Default()
	}
	emb, err := NewEmbedder(ctx, cfg)
	if err != nil {
		logger.Warn("embeddings unavailable",
			slog.String("provider", string(cfg.Provider)),
			slog.Any("error", err))
		return nil
	}
	return emb
}

// GeminiEmbedder embeds texts with a Gemini embedding model
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates a Gemini embedder
func NewGeminiEmbedder(ctx context.Context, cfg EmbeddingConfig, opts ...option.ClientOption) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiEmbeddingModel
	}

	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

// Embed implements Embedder
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := e.client.EmbeddingModel(e.model)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, &APICallError{Provider: ProviderGemini, Message: "batch embed failed", Cause: err}
	}
	if len(res.Embeddings) != len(texts) {
		return nil, &ParseError{Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(res.Embeddings))}
	}

	out := make([][]float64, len(texts))
	for i, emb := range res.Embeddings {
		vec := make([]float64, len(emb.Values))
		for j, v := range emb.Values {
			vec[j] = float64(v)
		}
		out[i] = vec
	}
	return out, nil
}

// Close releases the underlying client
func (e *GeminiEmbedder) Close() error {
	return e.client.Close()
}

// OpenAIEmbedder embeds texts with the OpenAI embeddings API
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an OpenAI embedder
func NewOpenAIEmbedder(cfg EmbeddingConfig, opts ...oaoption.RequestOption) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIEmbeddingModel
	}

	reqOpts := []oaoption.RequestOption{oaoption.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, oaoption.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	client := openai.NewClient(reqOpts...)
	return &OpenAIEmbedder{client: &client, model: model}, nil
}

// Embed implements Embedder
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, &APICallError{Provider: ProviderOpenAI, Message: "failed to generate embeddings", Cause: err}
	}
	if len(resp.Data) != len(texts) {
		return nil, &ParseError{Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(resp.Data))}
	}

	out := make([][]float64, len(texts))
	for _, data := range resp.Data {
		idx := int(data.Index)
		if idx < 0 || idx >= len(out) {
			return nil, &ParseError{Message: fmt.Sprintf("embedding index %d out of range", idx)}
		}
		out[idx] = data.Embedding
	}
	return out, nil
}
