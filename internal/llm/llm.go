// Package llm provides the model inference capability used by the selection
// strategies, with Gemini and OpenAI-compatible backends.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/ratelimit"
)

// Inference sends one system and one user message to a model and returns
// the raw text answer.
type Inference interface {
	CallModel(ctx context.Context, system, user string) (string, error)
}

// InferenceFunc adapts a function to Inference.
type InferenceFunc func(ctx context.Context, system, user string) (string, error)

func (f InferenceFunc) CallModel(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

// New builds the configured backend wrapped with rate limiting and instrumentation.
func New(ctx context.Context, cfg config.Config, limiter *ratelimit.ModelLimiter, metrics *observability.Metrics, logger *slog.Logger) (Inference, error) {
	var backend Inference
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg.LLMAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		backend = g
	case config.ProviderOpenAI:
		backend = NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.LLMProvider)
	}
	return Wrap(backend, cfg.LLMModel, limiter, metrics, logger), nil
}

// Wrap applies rate limiting and instrumentation around a backend.
func Wrap(backend Inference, model string, limiter *ratelimit.ModelLimiter, metrics *observability.Metrics, logger *slog.Logger) Inference {
	if logger == nil {
		logger = slog.Default()
	}
	return &Instrumented{
		next:    &RateLimited{next: backend, model: model, limiter: limiter},
		model:   model,
		metrics: metrics,
		logger:  logger,
	}
}
