package shadow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/llm"
)

// Runner selects a component for the same input with the one-call and the
// two-call strategy and compares the results.
type Runner struct {
	oneCall *agent.Agent
	twoCall *agent.Agent
	logger  *slog.Logger
}

// NewRunner builds one agent per strategy from cfg. The configured strategy
// is ignored.
func NewRunner(cfg config.AgentConfig, model llm.Inference, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	build := func(s domain.SelectionStrategy) (*agent.Agent, error) {
		c := cfg
		c.ComponentSelectionStrategy = s
		a, err := agent.New(agent.Options{Config: c, Inference: model, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("shadow: build %s agent: %w", s, err)
		}
		return a, nil
	}
	one, err := build(domain.StrategyOneCall)
	if err != nil {
		return nil, err
	}
	two, err := build(domain.StrategyTwoCalls)
	if err != nil {
		return nil, err
	}
	return &Runner{oneCall: one, twoCall: two, logger: logger}, nil
}

// Run compares both strategies on one input. The left side is one-call.
func (r *Runner) Run(ctx context.Context, prompt string, in domain.InputData) (*ComparisonResult, error) {
	left, err := r.oneCall.Select(ctx, prompt, in)
	if err != nil {
		return nil, fmt.Errorf("one-call selection: %w", err)
	}
	right, err := r.twoCall.Select(ctx, prompt, in)
	if err != nil {
		return nil, fmt.Errorf("two-call selection: %w", err)
	}
	res := Compare(left, right)
	res.InputID = in.ID
	r.logger.InfoContext(ctx, "strategy comparison", "input_id", in.ID, "all_match", res.AllMatch, "summary", res.Summary)
	return res, nil
}
