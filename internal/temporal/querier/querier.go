package querier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/versioning"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/workflows"
)

// TemporalQuerier implements WorkflowQuerier using a Temporal client.
type TemporalQuerier struct {
	client client.Client
}

// New creates a TemporalQuerier.
func New(c client.Client) *TemporalQuerier {
	return &TemporalQuerier{client: c}
}

// WorkflowID builds the id of a generation workflow.
func WorkflowID(sessionID string) string {
	if sessionID == "" {
		return "ngui-generate-" + uuid.NewString()
	}
	return fmt.Sprintf("ngui-generate-%s-%s", sessionID, uuid.NewString())
}

// StartGeneration starts GenerateUIWorkflow on the generate queue.
func (q *TemporalQuerier) StartGeneration(ctx context.Context, in workflows.GenerateInput) (WorkflowSummary, error) {
	run, err := q.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        WorkflowID(in.SessionID),
		TaskQueue: versioning.QueueGenerate,
	}, workflows.GenerateUIWorkflow, in)
	if err != nil {
		return WorkflowSummary{}, fmt.Errorf("start generation: %w", err)
	}
	return WorkflowSummary{
		WorkflowID: run.GetID(),
		RunID:      run.GetRunID(),
		Status:     enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING.String(),
		TaskQueue:  versioning.QueueGenerate,
	}, nil
}

// ListWorkflows lists workflow executions using Temporal's visibility API.
func (q *TemporalQuerier) ListWorkflows(ctx context.Context, opts ListOptions) ([]WorkflowSummary, error) {
	resp, err := q.client.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
		Query:    opts.Query(),
		PageSize: int32(opts.pageSize()),
	})
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}

	var summaries []WorkflowSummary
	for _, exec := range resp.Executions {
		s := WorkflowSummary{
			WorkflowID: exec.Execution.WorkflowId,
			RunID:      exec.Execution.RunId,
			Status:     exec.Status.String(),
			StartTime:  exec.StartTime.AsTime(),
			TaskQueue:  exec.TaskQueue,
		}
		if exec.CloseTime != nil {
			s.CloseTime = exec.CloseTime.AsTime()
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// GetGenerationState returns the result of a completed workflow or the
// queried state of a running one.
func (q *TemporalQuerier) GetGenerationState(ctx context.Context, workflowID string) (*workflows.GenerationState, error) {
	desc, err := q.client.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return nil, fmt.Errorf("describe workflow: %w", err)
	}

	var state workflows.GenerationState
	switch status := desc.WorkflowExecutionInfo.Status; status {
	case enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		if err := q.client.GetWorkflow(ctx, workflowID, "").Get(ctx, &state); err != nil {
			return nil, fmt.Errorf("get workflow result: %w", err)
		}
	case enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING:
		resp, err := q.client.QueryWorkflow(ctx, workflowID, "", workflows.QueryNameState)
		if err != nil {
			return nil, fmt.Errorf("query workflow state: %w", err)
		}
		if err := resp.Get(&state); err != nil {
			return nil, fmt.Errorf("decode query result: %w", err)
		}
	default:
		return nil, fmt.Errorf("workflow %s has status %s, cannot read state", workflowID, status)
	}
	return &state, nil
}

// DescribeWorkflow returns detailed information about a workflow execution.
func (q *TemporalQuerier) DescribeWorkflow(ctx context.Context, workflowID string) (*WorkflowDescription, error) {
	desc, err := q.client.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return nil, fmt.Errorf("describe workflow: %w", err)
	}

	info := desc.WorkflowExecutionInfo
	wd := &WorkflowDescription{
		WorkflowSummary: WorkflowSummary{
			WorkflowID: info.Execution.WorkflowId,
			RunID:      info.Execution.RunId,
			Status:     info.Status.String(),
			StartTime:  info.StartTime.AsTime(),
			TaskQueue:  info.TaskQueue,
		},
	}
	if info.CloseTime != nil {
		wd.CloseTime = info.CloseTime.AsTime()
	}
	return wd, nil
}
