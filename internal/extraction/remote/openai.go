package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	commonhttp "requirement-extractor/internal/common/http"
	"requirement-extractor/internal/extraction"
)

const (
	ProviderOpenAI      = "openai"
	DefaultOpenAIURL    = "https://api.openai.com"
	DefaultOpenAIModel  = "gpt-3.5-turbo"
	chatCompletionsPath = "/v1/chat/completions"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAICompleter talks to any OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	client  *commonhttp.Client
	baseURL string
	apiKey  string
	opts    Options
}

func NewOpenAICompleter(client *commonhttp.Client, baseURL, apiKey string, opts Options) *OpenAICompleter {
	if baseURL == "" {
		baseURL = DefaultOpenAIURL
	}
	if opts.Model == "" {
		opts.Model = DefaultOpenAIModel
	}
	return &OpenAICompleter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		opts:    opts.withDefaults(),
	}
}

func (c *OpenAICompleter) Name() string { return ProviderOpenAI }

func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	req := chatCompletionRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.opts.temperature(),
		MaxTokens:   c.opts.MaxTokens,
	}

	body, err := c.client.PostJSON(ctx, c.baseURL+chatCompletionsPath, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, req)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode completion envelope: %v", extraction.ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", extraction.ErrRemoteUnavailable)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty completion", extraction.ErrRemoteUnavailable)
	}
	return content, nil
}
