// Package llm talks to Claude for style analysis and post composition.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

const (
	analyzeMaxTokens = 1024
	composeMaxTokens = 512
)

// ErrMissingAPIKey is returned by every call when no API key was configured.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

// Options configures an AnthropicProvider.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// AnthropicProvider analyzes post styles and composes posts using Claude.
type AnthropicProvider struct {
	client  *anthropic.Client
	model   string
	timeout time.Duration
	hasKey  bool
}

// NewAnthropicProvider creates a provider. The SDK's retries are disabled so each
// call is a single attempt bounded by opts.Timeout.
func NewAnthropicProvider(opts Options) *AnthropicProvider {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicProvider{
		client:  &client,
		model:   model,
		timeout: opts.Timeout,
		hasKey:  opts.APIKey != "",
	}
}

// AnalyzeStyle derives a style profile for topic from the given top posts.
func (p *AnthropicProvider) AnalyzeStyle(ctx context.Context, topic string, samples []models.StyleSample, hoursBack int) (profile models.StyleProfile, err error) {
	ctx, span := observability.GetTraceLayer().TraceUpstreamCall(ctx, observability.ServiceAnthropic, "analyzeStyle")
	defer span.End()
	span.SetAttributes(attribute.Int("llm.samples", len(samples)))
	done := observability.TrackUpstream(observability.ServiceAnthropic, "analyzeStyle")
	defer func() {
		done(err)
		observability.RecordErrorInContext(ctx, err)
	}()

	// Prefill the assistant turn so Claude continues with the JSON object body.
	text, err := p.complete(ctx, buildAnalyzePrompt(topic, samples, hoursBack), analyzeMaxTokens, "{")
	if err != nil {
		return models.StyleProfile{}, err
	}
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		text = "{" + text
	}
	return ParseStyleProfile(text)
}

// ComposePost writes one post about topic in the given style, grounded on recent content.
func (p *AnthropicProvider) ComposePost(ctx context.Context, topic string, style models.StyleProfile, recent []string) (post string, err error) {
	ctx, span := observability.GetTraceLayer().TraceUpstreamCall(ctx, observability.ServiceAnthropic, "composePost")
	defer span.End()
	done := observability.TrackUpstream(observability.ServiceAnthropic, "composePost")
	defer func() {
		done(err)
		observability.RecordErrorInContext(ctx, err)
	}()

	text, err := p.complete(ctx, buildComposePrompt(topic, style, recent), composeMaxTokens, "")
	if err != nil {
		return "", err
	}
	return CleanPost(text)
}

func (p *AnthropicProvider) complete(ctx context.Context, prompt string, maxTokens int64, prefill string) (string, error) {
	if !p.hasKey {
		return "", ErrMissingAPIKey
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}
	if prefill != "" {
		messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(prefill)))
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return "", errors.New("claude returned empty response")
	}
	return responseText, nil
}
