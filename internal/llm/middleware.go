package llm

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/ratelimit"
)

// RateLimited waits for a model token before each call.
type RateLimited struct {
	next    Inference
	model   string
	limiter *ratelimit.ModelLimiter
}

func (r *RateLimited) CallModel(ctx context.Context, system, user string) (string, error) {
	if err := r.limiter.Wait(ctx, r.model); err != nil {
		return "", domain.Errorf(domain.CodeTransportError, "llm: %w", err)
	}
	return r.next.CallModel(ctx, system, user)
}

// Instrumented traces, times and logs every call.
type Instrumented struct {
	next    Inference
	model   string
	metrics *observability.Metrics
	logger  *slog.Logger
}

func (i *Instrumented) CallModel(ctx context.Context, system, user string) (string, error) {
	ctx, span := observability.StartSpan(ctx, "llm.call_model",
		attribute.String("llm.model", i.model),
		attribute.Int("llm.system_chars", len(system)),
		attribute.Int("llm.user_chars", len(user)),
	)
	start := time.Now()
	out, err := i.next.CallModel(ctx, system, user)
	elapsed := time.Since(start)
	observability.EndSpan(span, err)
	i.metrics.RecordLLMCall(ctx, i.model, elapsed, err)

	if err != nil {
		i.logger.WarnContext(ctx, "llm call failed", "model", i.model, "duration_ms", elapsed.Milliseconds(), "error", err)
		return "", err
	}
	i.logger.DebugContext(ctx, "llm call", "model", i.model, "duration_ms", elapsed.Milliseconds(), "response_chars", len(out))
	return out, nil
}
