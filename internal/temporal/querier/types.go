// Package querier provides access to generation workflows.
package querier

import (
	"fmt"
	"time"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/versioning"
)

// ListOptions controls filtering for ListWorkflows.
type ListOptions struct {
	// StatusFilter filters by workflow status (e.g. "Running", "Completed").
	StatusFilter string
	// PageSize limits the number of results. 0 means 50.
	PageSize int
}

// Query renders the visibility query. Only generation workflows are listed.
func (o ListOptions) Query() string {
	q := fmt.Sprintf("TaskQueue = %q", versioning.QueueGenerate)
	if o.StatusFilter != "" {
		q += fmt.Sprintf(" AND ExecutionStatus = %q", o.StatusFilter)
	}
	return q
}

func (o ListOptions) pageSize() int {
	if o.PageSize <= 0 {
		return 50
	}
	return o.PageSize
}

// WorkflowSummary is a lightweight overview of a workflow execution.
type WorkflowSummary struct {
	WorkflowID string    `json:"workflow_id"`
	RunID      string    `json:"run_id"`
	Status     string    `json:"status"`
	StartTime  time.Time `json:"start_time"`
	CloseTime  time.Time `json:"close_time,omitempty"`
	TaskQueue  string    `json:"task_queue"`
}

// WorkflowDescription provides detailed info about a workflow execution.
type WorkflowDescription struct {
	WorkflowSummary
	SearchAttributes map[string]any `json:"search_attributes,omitempty"`
}
