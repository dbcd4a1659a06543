// Package agui implements AG-UI protocol SSE streaming of generation workflows.
package agui

import "time"

// EventType identifies an AG-UI event.
type EventType string

const (
	EventRunStarted    EventType = "RUN_STARTED"
	EventRunFinished   EventType = "RUN_FINISHED"
	EventRunError      EventType = "RUN_ERROR"
	EventStateSnapshot EventType = "STATE_SNAPSHOT"
	EventCustom        EventType = "CUSTOM"
)

// Custom event names.
const (
	CustomUIBlock      = "ui_block"
	CustomUIBlockError = "ui_block_error"
)

// Event is a single SSE event emitted to the client.
type Event struct {
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
	Data       any       `json:"data,omitempty"`
}

// CustomData carries a named payload in a CUSTOM event.
type CustomData struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// BlockError describes one input that produced no block.
type BlockError struct {
	InputID string `json:"id"`
	Phase   string `json:"phase"`
	Message string `json:"message"`
}

// FinishedData summarises a finished run.
type FinishedData struct {
	Blocks int `json:"blocks"`
	Failed int `json:"failed"`
}

// ErrorData carries error info for RUN_ERROR events.
type ErrorData struct {
	Message string `json:"message"`
}
