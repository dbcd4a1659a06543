package activities

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/ratelimit"
)

// Pipeline is the part of the agent the activities drive.
type Pipeline interface {
	Prepare(in domain.InputData) (domain.InputData, error)
	Select(ctx context.Context, prompt string, in domain.InputData) (domain.ComponentMetadata, error)
	Validate(ctx context.Context, m domain.ComponentMetadata) (domain.ComponentData, []domain.ValidationError)
	Render(ctx context.Context, cd domain.ComponentData, m domain.ComponentMetadata) (domain.UIBlock, error)
}

var _ Pipeline = (*agent.Agent)(nil)

// Activities holds the dependencies for all Temporal activities.
// Each method is registered as a Temporal activity.
type Activities struct {
	Agent  Pipeline
	Budget *ratelimit.SessionBudget // nil = no budget enforcement
}

// checkBudget enforces the per-session component budget when configured.
func (a *Activities) checkBudget(sessionID string) error {
	if a.Budget == nil || sessionID == "" {
		return nil
	}
	if err := a.Budget.CheckAndRecord(sessionID, 1); err != nil {
		return temporal.NewNonRetryableApplicationError(err.Error(), "SessionBudgetExceeded", err)
	}
	return nil
}

// nonRetryable marks failures that a retry cannot fix. Transport errors and
// uncoded errors stay retryable.
func nonRetryable(err error) error {
	switch code := domain.CodeOf(err); code {
	case "", domain.CodeTransportError:
		return err
	default:
		return temporal.NewNonRetryableApplicationError(err.Error(), string(code), err)
	}
}

// SelectComponent asks the model, or the per-type mapping, for the component of one input.
func (a *Activities) SelectComponent(ctx context.Context, in SelectComponentInput) (SelectComponentOutput, error) {
	if err := a.checkBudget(in.SessionID); err != nil {
		return SelectComponentOutput{}, err
	}
	m, err := a.Agent.Select(ctx, in.Prompt, in.Input)
	if err != nil {
		return SelectComponentOutput{}, nonRetryable(fmt.Errorf("select component activity: %w", err))
	}
	m.Data = nil
	return SelectComponentOutput{Metadata: m}, nil
}

// BuildBlock extracts, validates and renders one selected component.
func (a *Activities) BuildBlock(ctx context.Context, in BuildBlockInput) (BuildBlockOutput, error) {
	prepared, err := a.Agent.Prepare(in.Input)
	if err != nil {
		return BuildBlockOutput{}, nonRetryable(fmt.Errorf("build block activity: %w", err))
	}
	m := in.Metadata
	m.Data = prepared.Parsed

	cd, errs := a.Agent.Validate(ctx, m)
	if len(errs) > 0 {
		return BuildBlockOutput{Errors: errs}, nil
	}
	block, err := a.Agent.Render(ctx, cd, m)
	if err != nil {
		return BuildBlockOutput{}, nonRetryable(fmt.Errorf("build block activity: %w", err))
	}
	return BuildBlockOutput{Block: &block}, nil
}
