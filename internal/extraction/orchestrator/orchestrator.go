// Package orchestrator picks between the remote extractor and the rule engine
// for each request and guarantees a well-formed result unless the input itself
// is invalid.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"requirement-extractor/internal/common/logger"
	"requirement-extractor/internal/common/metrics"
	"requirement-extractor/internal/common/observability"
	"requirement-extractor/internal/extraction"
	"requirement-extractor/internal/extraction/classifier"
	"requirement-extractor/internal/extraction/generator"
	"requirement-extractor/internal/extraction/keywords"
	"requirement-extractor/internal/models"
)

const (
	ConfidenceRemote       = 0.9
	ConfidenceRuleBased    = 0.8
	ConfidenceRuleFallback = 0.7

	DefaultMaxDescriptionLength = 5000
	DefaultRemoteTimeout        = 15 * time.Second
)

// RemoteExtractor is satisfied by *remote.Adapter.
type RemoteExtractor interface {
	Extract(ctx context.Context, text string) (*models.ExtractionResult, error)
	Provider() string
}

// ResultCache is satisfied by *cache.ResultCache.
type ResultCache interface {
	Get(ctx context.Context, description string) (*models.ExtractionResult, bool, error)
	Set(ctx context.Context, description string, result *models.ExtractionResult) error
}

type Config struct {
	MaxDescriptionLength int
	RemoteTimeout        time.Duration
}

type Option func(*Orchestrator)

// WithRemote enables the remote path. Pass nil to keep it disabled.
func WithRemote(r RemoteExtractor) Option {
	return func(o *Orchestrator) { o.remote = r }
}

func WithCache(c ResultCache) Option {
	return func(o *Orchestrator) { o.cache = c }
}

func WithObservability(obs *observability.Observability) Option {
	return func(o *Orchestrator) { o.obs = obs }
}

type Orchestrator struct {
	config     Config
	classifier *classifier.Classifier
	generator  *generator.Generator
	remote     RemoteExtractor
	cache      ResultCache
	obs        *observability.Observability
	logger     logger.Logger
	now        func() time.Time
}

func New(config Config, table *keywords.Table, log logger.Logger, opts ...Option) *Orchestrator {
	if config.MaxDescriptionLength <= 0 {
		config.MaxDescriptionLength = DefaultMaxDescriptionLength
	}
	if config.RemoteTimeout <= 0 {
		config.RemoteTimeout = DefaultRemoteTimeout
	}
	o := &Orchestrator{
		config:     config,
		classifier: classifier.New(table),
		generator:  generator.New(table),
		logger:     log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RemoteEnabled reports whether requests will try the remote path first.
func (o *Orchestrator) RemoteEnabled() bool {
	return o.remote != nil
}

// Provider names the remote provider, or "" when the remote path is off.
func (o *Orchestrator) Provider() string {
	if o.remote == nil {
		return ""
	}
	return o.remote.Provider()
}

// remoteOutcome is the result of the TryRemote state. A nil err means result
// is usable as-is.
type remoteOutcome struct {
	result *models.ExtractionResult
	err    error
}

// ValidateDescription trims description and enforces the length bounds.
func ValidateDescription(description string, maxLen int) (string, error) {
	text := strings.TrimSpace(description)
	if text == "" {
		return "", fmt.Errorf("%w: description is required", extraction.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(text); n > maxLen {
		return "", fmt.Errorf("%w: description is %d characters, maximum is %d", extraction.ErrInvalidInput, n, maxLen)
	}
	return text, nil
}

// Extract turns description into a result. The only error it returns is
// ErrInvalidInput; every remote failure is absorbed by the rule path.
func (o *Orchestrator) Extract(ctx context.Context, description string) (*models.ExtractionResult, error) {
	start := o.now()

	text, err := ValidateDescription(description, o.config.MaxDescriptionLength)
	if err != nil {
		return nil, err
	}

	if o.remote == nil {
		result := o.ruleBased(text, models.ModelRuleBased, ConfidenceRuleBased, "")
		return o.finish(ctx, result, start), nil
	}

	if cached := o.cached(ctx, text); cached != nil {
		metrics.ExtractionCacheHits.Inc()
		return o.finish(ctx, cached, start), nil
	}

	outcome := o.tryRemote(ctx, text)

	var result *models.ExtractionResult
	switch {
	case outcome.err == nil:
		result = complete(outcome.result)
		result.Metadata.Confidence = ConfidenceRemote
		o.store(ctx, text, result)
	default:
		code := extraction.ErrorCode(outcome.err)
		metrics.ExtractionRemoteFailures.WithLabelValues(code).Inc()

		fields := map[string]interface{}{
			"provider":   o.remote.Provider(),
			"error_code": code,
			"error":      outcome.err.Error(),
		}
		if code == "AUTH_ERROR" {
			o.logger.Error("Remote extraction rejected credentials, using rule engine", fields)
		} else {
			o.logger.Warn("Remote extraction failed, using rule engine", fields)
		}
		result = o.ruleBased(text, models.ModelRuleBasedFallback, ConfidenceRuleFallback, outcome.err.Error())
	}

	return o.finish(ctx, result, start), nil
}

func (o *Orchestrator) tryRemote(ctx context.Context, text string) remoteOutcome {
	ctx, cancel := context.WithTimeout(ctx, o.config.RemoteTimeout)
	defer cancel()

	result, err := o.remote.Extract(ctx, text)
	if err != nil {
		return remoteOutcome{err: err}
	}
	if result == nil {
		return remoteOutcome{err: fmt.Errorf("%w: empty result", extraction.ErrRemoteUnavailable)}
	}
	return remoteOutcome{result: result}
}

func (o *Orchestrator) ruleBased(text, model string, confidence float64, cause string) *models.ExtractionResult {
	archetype, score := o.classifier.Classify(text)
	attrs := o.generator.Generate(archetype.Name, text)

	appName := strings.TrimSpace(archetype.Name)
	if appName == "" {
		appName = extraction.DefaultAppName
	}

	o.logger.Debug("Rule-based extraction", map[string]interface{}{
		"archetype": archetype.Name,
		"score":     score,
		"model":     model,
	})

	return &models.ExtractionResult{
		AppName:  appName,
		Entities: attrs.Entities,
		Roles:    attrs.Roles,
		Features: attrs.Features,
		Metadata: models.ExtractionMetadata{
			Model:      model,
			Confidence: confidence,
			Archetype:  archetype.Name,
			Error:      cause,
		},
	}
}

func (o *Orchestrator) cached(ctx context.Context, text string) *models.ExtractionResult {
	if o.cache == nil {
		return nil
	}
	result, hit, err := o.cache.Get(ctx, text)
	if err != nil {
		o.logger.Warn("Result cache lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !hit || result == nil {
		return nil
	}
	result = complete(result)
	result.Metadata.Model = models.ModelRemote
	result.Metadata.Confidence = ConfidenceRemote
	result.Metadata.Error = ""
	return result
}

// complete enforces the result shape on output the rule engine did not
// produce: a non-blank name and bounded, non-empty lists.
func complete(result *models.ExtractionResult) *models.ExtractionResult {
	result.AppName = strings.TrimSpace(result.AppName)
	if result.AppName == "" {
		result.AppName = extraction.DefaultAppName
	}
	attrs := extraction.Normalize(extraction.Attributes{
		Entities: result.Entities,
		Roles:    result.Roles,
		Features: result.Features,
	})
	result.Entities = attrs.Entities
	result.Roles = attrs.Roles
	result.Features = attrs.Features
	return result
}

func (o *Orchestrator) store(ctx context.Context, text string, result *models.ExtractionResult) {
	if o.cache == nil {
		return
	}
	if err := o.cache.Set(ctx, text, result); err != nil {
		o.logger.Warn("Result cache store failed", map[string]interface{}{"error": err.Error()})
	}
}

// finish stamps timing metadata and records metrics.
func (o *Orchestrator) finish(ctx context.Context, result *models.ExtractionResult, start time.Time) *models.ExtractionResult {
	end := o.now()
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	result.Metadata.ExtractedAt = end.UTC()
	result.Metadata.ProcessingTimeMs = elapsed.Milliseconds()

	model := result.Metadata.Model
	metrics.ExtractionRequests.WithLabelValues(model).Inc()
	metrics.ExtractionDuration.WithLabelValues(model).Observe(elapsed.Seconds())
	o.obs.RecordExtraction(ctx, model, elapsed)

	return result
}
