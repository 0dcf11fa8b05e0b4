package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// OpenAIClient implements Client for the OpenAI chat completions API
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(config.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	client := openai.NewClient(reqOpts...)
	return &OpenAIClient{
		client: &client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	params, err := c.params(prompt, tier)
	if err != nil {
		return "", err
	}
	return c.complete(ctx, params)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	params, err := c.params(prompt, tier)
	if err != nil {
		return "", err
	}
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONObject: &openai.ResponseFormatJSONObjectParam{
			Type: constant.JSONObject("json_object"),
		},
	}

	text, err := c.complete(ctx, params)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OpenAIClient) params(prompt string, tier ModelTier) (openai.ChatCompletionNewParams, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("no model configured for tier %s", tier)
	}

	return openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(modelName),
		Temperature: openai.Float(0.1), // Low temperature for consistent output
	}, nil
}

func (c *OpenAIClient) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout())
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &APICallError{Provider: ProviderOpenAI, Message: "chat completion failed", Cause: err}
	}
	if len(completion.Choices) == 0 {
		return "", &ParseError{Message: "no choices in response"}
	}
	return completion.Choices[0].Message.Content, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Provider returns ProviderOpenAI
func (c *OpenAIClient) Provider() Provider {
	return ProviderOpenAI
}

// Close is a no-op; the OpenAI client holds no long-lived resources
func (c *OpenAIClient) Close() error {
	return nil
}
