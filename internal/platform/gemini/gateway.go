package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/semiverso/prometheus-api/internal/config"
	"github.com/semiverso/prometheus-api/internal/generation"
	"github.com/semiverso/prometheus-api/internal/redact"
	"google.golang.org/genai"
)

// Gateway implements generation.Gateway against Google's Gemini API.
// It owns the retry policy (exponential backoff with jitter on 429 and
// 5xx), the hard request timeout, and response-shape validation.
type Gateway struct {
	logger  *slog.Logger
	client  *genai.Client
	model   string
	retries int
	delay   time.Duration
	timeout time.Duration
}

// NewGateway creates a Gateway from the LLM configuration.
func NewGateway(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Gateway, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 3
	}
	delaySeconds := cfg.RetryDelaySeconds
	if delaySeconds < 1 {
		delaySeconds = 1
	}
	timeoutSeconds := cfg.RequestTimeoutSeconds
	if timeoutSeconds < 1 {
		timeoutSeconds = 45
	}

	return &Gateway{
		logger:  logger.With("component", "gemini_gateway"),
		client:  client,
		model:   cfg.ModelName,
		retries: retries,
		delay:   time.Duration(delaySeconds) * time.Second,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

var _ generation.Gateway = (*Gateway)(nil)

// Complete sends the prompt to the completion endpoint and returns the
// raw reply text. Only 429 and 5xx statuses are retried; every other
// failure is terminal for the call and classified with the sentinels in
// the generation package.
func (g *Gateway) Complete(ctx context.Context, prompt string, opts generation.Options) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: empty prompt", generation.ErrInvalidConfig)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		TopP:            genai.Ptr(opts.TopP),
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var lastErr error

	for attempt := 0; attempt <= g.retries; attempt++ {
		g.logger.InfoContext(ctx, "calling completion endpoint",
			"model", g.model,
			"attempt", attempt+1,
			"max_attempts", g.retries+1,
			"prompt_length", len(prompt))

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
		if err != nil {
			classified, retryable := g.classifyCallError(ctx, err)
			if !retryable {
				g.logger.ErrorContext(ctx, "completion call failed, not retrying",
					"attempt", attempt+1,
					"error", redact.Error(err))
				return "", classified
			}
			lastErr = classified
			g.logger.WarnContext(ctx, "completion call failed, will retry",
				"attempt", attempt+1,
				"error", redact.Error(err))
		} else {
			text, shapeErr := replyText(resp)
			if shapeErr != nil {
				// A malformed success body is a distinct failure kind
				// and never worth retrying.
				g.logger.ErrorContext(ctx, "completion envelope malformed",
					"attempt", attempt+1,
					"error", shapeErr)
				return "", shapeErr
			}
			g.logger.InfoContext(ctx, "completion call succeeded",
				"attempt", attempt+1,
				"reply_length", len(text))
			return text, nil
		}

		if attempt >= g.retries {
			break
		}

		// delay = base * 2^attempt * jitter in [0.5, 1.0)
		backoff := float64(g.delay) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		wait := time.Duration(backoff * jitter)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "retry backoff interrupted",
				"attempt", attempt+1,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", generation.ErrTimeout, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: exhausted %d attempts: %v",
		generation.ErrUpstream, g.retries+1, lastErr)
}

// classifyCallError maps a transport-level error onto the generation
// taxonomy and reports whether the call may be retried.
func (g *Gateway) classifyCallError(ctx context.Context, err error) (error, bool) {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return fmt.Errorf("%w: %v", generation.ErrTimeout, ctx.Err()), false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError {
			return fmt.Errorf("%w: upstream status %d: %s",
				generation.ErrUpstream, apiErr.Code, apiErr.Message), true
		}
		return fmt.Errorf("%w: upstream status %d: %s",
			generation.ErrUpstream, apiErr.Code, apiErr.Message), false
	}

	// Plain network failures are terminal for the call.
	return fmt.Errorf("%w: %s", generation.ErrUpstream, redact.Error(err)), false
}

// replyText validates the candidate/content/parts envelope and
// concatenates the text parts.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrMalformedResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content", generation.ErrMalformedResponse)
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text parts", generation.ErrMalformedResponse)
	}
	return text, nil
}
