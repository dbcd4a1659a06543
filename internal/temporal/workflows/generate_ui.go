// Package workflows defines the Temporal workflow functions.
package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/activities"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/versioning"
)

// QueryNameState is the query handler returning the current GenerationState.
const QueryNameState = "generation_state"

// GenerateInput is the input to the generation workflow.
type GenerateInput struct {
	SessionID string             `json:"session_id,omitempty"`
	Prompt    string             `json:"prompt"`
	Inputs    []domain.InputData `json:"inputs"`
}

// ItemState tracks one input through the workflow.
type ItemState struct {
	InputID   string                   `json:"id"`
	Phase     agent.Phase              `json:"phase"`
	Component domain.Component         `json:"component,omitempty"`
	Block     *domain.UIBlock          `json:"block,omitempty"`
	Errors    []domain.ValidationError `json:"errors,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

// GenerationState is the queryable state and the result of the workflow.
// Per-input failures are recorded in the items; only infra failures produce
// workflow-level errors.
type GenerationState struct {
	Prompt string      `json:"prompt"`
	Items  []ItemState `json:"items"`
	Done   bool        `json:"done"`
}

// Blocks returns the rendered blocks in input order.
func (s GenerationState) Blocks() []domain.UIBlock {
	var out []domain.UIBlock
	for _, it := range s.Items {
		if it.Block != nil {
			out = append(out, *it.Block)
		}
	}
	return out
}

// Failed counts items that ended in a terminal error state.
func (s GenerationState) Failed() int {
	n := 0
	for _, it := range s.Items {
		if it.Phase.Failed() {
			n++
		}
	}
	return n
}

// GenerateUIWorkflow selects a component for every input on the LLM queue,
// then builds each block on the generate queue. Inputs run concurrently and
// a failed input never stops its siblings.
func GenerateUIWorkflow(ctx workflow.Context, input GenerateInput) (GenerationState, error) {
	logger := workflow.GetLogger(ctx)
	state := GenerationState{Prompt: input.Prompt, Items: make([]ItemState, len(input.Inputs))}
	for i, in := range input.Inputs {
		state.Items[i] = ItemState{InputID: in.ID, Phase: agent.PhaseReceived}
	}
	if err := workflow.SetQueryHandler(ctx, QueryNameState, func() (GenerationState, error) {
		return state, nil
	}); err != nil {
		return state, fmt.Errorf("register query handler: %w", err)
	}

	selectCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		TaskQueue:           versioning.QueueLLM,
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 2 * time.Second,
			MaximumAttempts: 3,
		},
	})
	buildCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	selects := make([]workflow.Future, len(input.Inputs))
	for i, in := range input.Inputs {
		selects[i] = workflow.ExecuteActivity(selectCtx, "SelectComponent", activities.SelectComponentInput{
			SessionID: input.SessionID,
			Prompt:    input.Prompt,
			Input:     in,
		})
	}

	builds := make([]workflow.Future, len(input.Inputs))
	for i, in := range input.Inputs {
		var sel activities.SelectComponentOutput
		if err := selects[i].Get(ctx, &sel); err != nil {
			state.Items[i].Phase = agent.PhaseLLMFailed
			state.Items[i].Error = err.Error()
			logger.Warn("component selection failed", "input_id", in.ID, "error", err)
			continue
		}
		state.Items[i].Phase = agent.PhaseSelected
		state.Items[i].Component = sel.Metadata.Component
		builds[i] = workflow.ExecuteActivity(buildCtx, "BuildBlock", activities.BuildBlockInput{
			Input:    in,
			Metadata: sel.Metadata,
		})
	}

	for i, f := range builds {
		if f == nil {
			continue
		}
		var out activities.BuildBlockOutput
		if err := f.Get(ctx, &out); err != nil {
			state.Items[i].Phase = agent.PhaseRenderFailed
			state.Items[i].Error = err.Error()
			logger.Warn("block build failed", "input_id", state.Items[i].InputID, "error", err)
			continue
		}
		if len(out.Errors) > 0 {
			state.Items[i].Phase = agent.PhaseValidateFailed
			state.Items[i].Errors = out.Errors
			continue
		}
		state.Items[i].Phase = agent.PhaseRendered
		state.Items[i].Block = out.Block
	}

	state.Done = true
	logger.Info("generation complete", "inputs", len(state.Items), "failed", state.Failed())
	return state, nil
}
