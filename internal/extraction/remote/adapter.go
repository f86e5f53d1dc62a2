// Package remote asks a hosted language model for requirements and validates
// whatever comes back.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	commonhttp "requirement-extractor/internal/common/http"
	"requirement-extractor/internal/extraction"
	"requirement-extractor/internal/models"
)

const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.3
)

var ErrUnknownProvider = errors.New("unknown remote provider")

// Completer sends one system+user exchange and returns the raw text answer.
type Completer interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Options tunes a completion. A nil Temperature selects DefaultTemperature;
// an explicit 0 is sent as 0.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

func (o Options) withDefaults() Options {
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	return o
}

func (o Options) temperature() float64 {
	if o.Temperature == nil {
		return DefaultTemperature
	}
	return *o.Temperature
}

type ProviderConfig struct {
	Provider string
	BaseURL  string
	APIKey   string
	Options
}

// NewCompleter builds the completer for cfg.Provider.
func NewCompleter(cfg ProviderConfig, client *commonhttp.Client) (Completer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenAI:
		return NewOpenAICompleter(client, cfg.BaseURL, cfg.APIKey, cfg.Options), nil
	case ProviderAnthropic:
		return NewAnthropicCompleter(cfg.BaseURL, cfg.APIKey, cfg.Options), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

var placeholderKeys = map[string]bool{
	"changeme":                    true,
	"change-me":                   true,
	"your-api-key":                true,
	"your_api_key":                true,
	"your-api-key-here":           true,
	"your_openai_api_key_here":    true,
	"your_anthropic_api_key_here": true,
	"sk-xxx":                      true,
	"xxx":                         true,
	"todo":                        true,
}

// IsPlaceholderKey reports whether key is empty or an obvious template value.
func IsPlaceholderKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return true
	}
	if strings.HasPrefix(k, "<") && strings.HasSuffix(k, ">") {
		return true
	}
	if strings.HasPrefix(k, "${") {
		return true
	}
	return placeholderKeys[k]
}

type Adapter struct {
	completer Completer
}

func NewAdapter(completer Completer) *Adapter {
	return &Adapter{completer: completer}
}

func (a *Adapter) Provider() string {
	return a.completer.Name()
}

// Extract makes a single remote call for text. Errors are always one of the
// extraction sentinels.
func (a *Adapter) Extract(ctx context.Context, text string) (*models.ExtractionResult, error) {
	start := time.Now()

	prompt, err := BuildPrompt(text)
	if err != nil {
		return nil, fmt.Errorf("%w: render prompt: %v", extraction.ErrRemoteUnavailable, err)
	}

	raw, err := a.completer.Complete(ctx, SystemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	return &models.ExtractionResult{
		AppName:  parsed.AppName,
		Entities: parsed.Entities,
		Roles:    parsed.Roles,
		Features: parsed.Features,
		Metadata: models.ExtractionMetadata{
			Model:            models.ModelRemote,
			ExtractedAt:      time.Now().UTC(),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			Provider:         a.completer.Name(),
		},
	}, nil
}

// classifyTransportError maps client and SDK failures onto the extraction
// sentinels.
func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", extraction.ErrRemoteUnavailable, ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", extraction.ErrRemoteUnavailable, err)
	}

	status := 0
	var statusErr *commonhttp.StatusError
	var apiErr *anthropic.Error
	switch {
	case errors.As(err, &statusErr):
		status = statusErr.StatusCode
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", extraction.ErrAuth, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", extraction.ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", extraction.ErrRemoteUnavailable, err)
	}
}
