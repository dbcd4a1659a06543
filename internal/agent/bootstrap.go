package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/llm"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/ratelimit"
)

// FromConfig builds an Agent the way every binary does: the YAML agent
// configuration at cfg.AgentConfigPath, the configured model behind a
// per-model token bucket, and OTel metric instruments.
func FromConfig(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Agent, error) {
	agentCfg, err := config.LoadAgentConfig(cfg.AgentConfigPath)
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("agent: metrics: %w", err)
	}

	limiter := ratelimit.NewModelLimiter(cfg.LLMRPS, cfg.LLMBurst)
	model, err := llm.New(ctx, cfg, limiter, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("agent: model: %w", err)
	}

	return New(Options{
		Config:      agentCfg,
		Inference:   model,
		Logger:      logger,
		Metrics:     metrics,
		MaxParallel: cfg.MaxParallel,
	})
}
