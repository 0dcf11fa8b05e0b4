package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxNewTokens = 512

// HuggingFaceClient implements Client for the HuggingFace inference API
type HuggingFaceClient struct {
	httpClient *http.Client
	config     *Config
	apiKey     string
}

// NewHuggingFaceClient creates a new HuggingFace client
func NewHuggingFaceClient(config *Config, apiKey string) (*HuggingFaceClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing huggingface api key")
	}
	return &HuggingFaceClient{
		httpClient: &http.Client{Timeout: config.timeout()},
		config:     config,
		apiKey:     apiKey,
	}, nil
}

type huggingFaceRequest struct {
	Inputs  string             `json:"inputs"`
	Options huggingFaceOptions `json:"options"`
}

type huggingFaceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type huggingFaceGeneration struct {
	GeneratedText *string `json:"generated_text"`
}

// GenerateContent generates text content using the specified model tier
func (c *HuggingFaceClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model := c.config.GetModel(tier)
	if model == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + "/" + model
	body, err := json.Marshal(huggingFaceRequest{
		Inputs:  prompt,
		Options: huggingFaceOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	raw, err := postJSON(ctx, c.httpClient, ProviderHuggingFace, endpoint, body, headers)
	if err != nil {
		return "", err
	}

	return parseHuggingFaceResponse(raw)
}

// parseHuggingFaceResponse accepts either [{"generated_text": ...}] or {"generated_text": ...}
func parseHuggingFaceResponse(raw []byte) (string, error) {
	var list []huggingFaceGeneration
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 && list[0].GeneratedText != nil {
			return *list[0].GeneratedText, nil
		}
		return "", &ParseError{Message: "no generated_text in response"}
	}

	var single huggingFaceGeneration
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", &ParseError{Message: "unexpected response shape", Cause: err}
	}
	if single.GeneratedText == nil {
		return "", &ParseError{Message: "no generated_text in response"}
	}
	return *single.GeneratedText, nil
}

// GenerateJSON generates text and strips any markdown wrapper around the JSON payload
func (c *HuggingFaceClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *HuggingFaceClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Provider returns ProviderHuggingFace
func (c *HuggingFaceClient) Provider() Provider {
	return ProviderHuggingFace
}

// Close releases idle connections
func (c *HuggingFaceClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// WebUIClient implements Client for a local text-generation-webui server
type WebUIClient struct {
	httpClient *http.Client
	config     *Config
}

// NewWebUIClient creates a WebUI client after probing the server's model endpoint
func NewWebUIClient(ctx context.Context, config *Config) (*WebUIClient, error) {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultWebUIURL
	}

	probeCtx, cancel := context.WithTimeout(ctx, config.healthTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, baseURL+"/api/v1/model", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create probe request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webui not available: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("webui responded %d", resp.StatusCode)
	}

	cfg := *config
	cfg.BaseURL = baseURL
	return &WebUIClient{
		httpClient: &http.Client{Timeout: config.timeout()},
		config:     &cfg,
	}, nil
}

type webUIRequest struct {
	Prompt       string `json:"prompt"`
	MaxNewTokens int    `json:"max_new_tokens"`
}

type webUIResponse struct {
	Results []struct {
		Text string `json:"text"`
	} `json:"results"`
}

// GenerateContent generates text; the tier is ignored because the server picks the model
func (c *WebUIClient) GenerateContent(ctx context.Context, prompt string, _ ModelTier) (string, error) {
	body, err := json.Marshal(webUIRequest{Prompt: prompt, MaxNewTokens: maxNewTokens})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	raw, err := postJSON(ctx, c.httpClient, ProviderWebUI, c.config.BaseURL+"/api/v1/generate", body, nil)
	if err != nil {
		return "", err
	}

	var out webUIResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &ParseError{Message: "invalid webui response", Cause: err}
	}
	if len(out.Results) == 0 {
		return "", &ParseError{Message: "no results in webui response"}
	}
	return out.Results[0].Text, nil
}

// GenerateJSON generates text and strips any markdown wrapper around the JSON payload
func (c *WebUIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the configured model name, usually empty for WebUI
func (c *WebUIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Provider returns ProviderWebUI
func (c *WebUIClient) Provider() Provider {
	return ProviderWebUI
}

// Close releases idle connections
func (c *WebUIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// postJSON sends a JSON body and returns the response body on a 2xx status
func postJSON(ctx context.Context, client *http.Client, provider Provider, url string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &APICallError{Provider: provider, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &APICallError{Provider: provider, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APICallError{Provider: provider, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APICallError{Provider: provider, Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, truncate(string(raw), 200))}
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
