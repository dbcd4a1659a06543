// Package mcpserver exposes the generation pipeline as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/prompts"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
)

// Generator runs the pipeline in-process.
type Generator interface {
	GenerateAll(ctx context.Context, prompt string, inputs []domain.InputData) []agent.Result
	Components(dataType string) []prompts.Choice
}

// RegisterTools registers the UI generation tools. A nil querier leaves
// generation_status unregistered.
func RegisterTools(server *mcp.Server, gen Generator, q querier.WorkflowQuerier) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "generate_ui",
			Description: "Select, configure and render a UI component for each data payload answering the user prompt",
		},
		generateUIHandler(gen),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_components",
			Description: "List the UI components the agent may choose, optionally for one data type",
		},
		listComponentsHandler(gen),
	)

	if q != nil {
		mcp.AddTool(server,
			&mcp.Tool{
				Name:        "generation_status",
				Description: "Get the per-input state of a durable generation workflow",
			},
			generationStatusHandler(q),
		)
	}
}

type dataInput struct {
	ID   string `json:"id,omitempty" jsonschema:"input id, generated when empty"`
	Data string `json:"data" jsonschema:"raw payload, usually JSON"`
	Type string `json:"type,omitempty" jsonschema:"data type identifier such as my.movies"`
}

type generateUIInput struct {
	Prompt string      `json:"prompt" jsonschema:"the user prompt the UI answers"`
	Inputs []dataInput `json:"inputs" jsonschema:"data payloads, one component each"`
}

type generateUIOutput struct {
	Blocks []domain.UIBlock `json:"blocks"`
	Errors []string         `json:"errors,omitempty"`
}

func generateUIHandler(gen Generator) mcp.ToolHandlerFor[generateUIInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input generateUIInput) (*mcp.CallToolResult, any, error) {
		if len(input.Inputs) == 0 {
			return errorResult("at least one input is required"), nil, nil
		}
		inputs := make([]domain.InputData, len(input.Inputs))
		for i, in := range input.Inputs {
			id := in.ID
			if id == "" {
				id = uuid.NewString()
			}
			inputs[i] = domain.InputData{ID: id, Data: in.Data, Type: in.Type}
		}

		out := generateUIOutput{Blocks: []domain.UIBlock{}}
		for _, res := range gen.GenerateAll(ctx, input.Prompt, inputs) {
			if res.Err != nil {
				out.Errors = append(out.Errors, res.Describe())
				continue
			}
			out.Blocks = append(out.Blocks, *res.Block)
		}
		if len(out.Blocks) == 0 {
			data, _ := json.Marshal(out.Errors)
			return errorResult("no component generated: " + string(data)), nil, nil
		}
		return textResult(out)
	}
}

type listComponentsInput struct {
	DataType string `json:"data_type,omitempty" jsonschema:"data type whose configured components to list"`
}

type componentInfo struct {
	Name        string           `json:"name"`
	Component   domain.Component `json:"component"`
	Description string           `json:"description"`
	Configured  bool             `json:"configured,omitempty"`
}

func listComponentsHandler(gen Generator) mcp.ToolHandlerFor[listComponentsInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input listComponentsInput) (*mcp.CallToolResult, any, error) {
		choices := gen.Components(input.DataType)
		out := make([]componentInfo, len(choices))
		for i, c := range choices {
			out[i] = componentInfo{
				Name:        c.Name,
				Component:   c.Component,
				Description: c.Metadata.Description,
				Configured:  c.Configured != nil,
			}
		}
		return textResult(out)
	}
}

type workflowIDInput struct {
	WorkflowID string `json:"workflow_id" jsonschema:"generation workflow id"`
}

func generationStatusHandler(q querier.WorkflowQuerier) mcp.ToolHandlerFor[workflowIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input workflowIDInput) (*mcp.CallToolResult, any, error) {
		if input.WorkflowID == "" {
			return errorResult("workflow_id is required"), nil, nil
		}

		state, err := q.GetGenerationState(ctx, input.WorkflowID)
		if err != nil {
			return nil, nil, fmt.Errorf("generation_status: %w", err)
		}

		return textResult(state)
	}
}

func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
