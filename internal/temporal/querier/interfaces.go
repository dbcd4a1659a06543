package querier

import (
	"context"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/workflows"
)

// WorkflowQuerier starts generation workflows and reads their state.
// Used by the HTTP API, AG-UI streamer, MCP server and CLI.
type WorkflowQuerier interface {
	StartGeneration(ctx context.Context, in workflows.GenerateInput) (WorkflowSummary, error)
	ListWorkflows(ctx context.Context, opts ListOptions) ([]WorkflowSummary, error)
	GetGenerationState(ctx context.Context, workflowID string) (*workflows.GenerationState, error)
	DescribeWorkflow(ctx context.Context, workflowID string) (*WorkflowDescription, error)
}
