// Package activities defines the Temporal activity I/O structs and the
// Activities implementation that bridges Temporal's serialization boundary
// to the agent pipeline.
package activities

import "github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"

// SelectComponentInput is the activity input for component selection.
type SelectComponentInput struct {
	SessionID string           `json:"session_id,omitempty"`
	Prompt    string           `json:"prompt"`
	Input     domain.InputData `json:"input"`
}

// SelectComponentOutput is the activity output of component selection.
// Parsed data does not cross the activity boundary; BuildBlock re-parses it.
type SelectComponentOutput struct {
	Metadata domain.ComponentMetadata `json:"metadata"`
}

// BuildBlockInput is the activity input for extraction, validation and rendering.
type BuildBlockInput struct {
	Input    domain.InputData         `json:"input"`
	Metadata domain.ComponentMetadata `json:"metadata"`
}

// BuildBlockOutput is the activity output of block building. Validation
// problems are reported in Errors with a nil Block.
type BuildBlockOutput struct {
	Block  *domain.UIBlock           `json:"block,omitempty"`
	Errors []domain.ValidationError `json:"errors,omitempty"`
}
