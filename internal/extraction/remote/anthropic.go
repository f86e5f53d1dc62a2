package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"requirement-extractor/internal/extraction"
)

const (
	ProviderAnthropic     = "anthropic"
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
)

// AnthropicCompleter uses the Messages API. SDK retries are disabled so a
// single Complete call makes exactly one request.
type AnthropicCompleter struct {
	client anthropic.Client
	opts   Options
}

func NewAnthropicCompleter(baseURL, apiKey string, opts Options) *AnthropicCompleter {
	if opts.Model == "" {
		opts.Model = DefaultAnthropicModel
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	return &AnthropicCompleter{
		client: anthropic.NewClient(reqOpts...),
		opts:   opts.withDefaults(),
	}
}

func (c *AnthropicCompleter) Name() string { return ProviderAnthropic }

func (c *AnthropicCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.opts.Model),
		MaxTokens:   int64(c.opts.MaxTokens),
		Temperature: anthropic.Float(c.opts.temperature()),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: no text content in response", extraction.ErrRemoteUnavailable)
	}
	return b.String(), nil
}
