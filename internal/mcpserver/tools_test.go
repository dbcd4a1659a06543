package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/mcpserver"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/workflows"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/testutil"
)

type stubQuerier struct {
	state *workflows.GenerationState
	err   error
}

func (s *stubQuerier) StartGeneration(_ context.Context, _ workflows.GenerateInput) (querier.WorkflowSummary, error) {
	return querier.WorkflowSummary{}, s.err
}

func (s *stubQuerier) ListWorkflows(_ context.Context, _ querier.ListOptions) ([]querier.WorkflowSummary, error) {
	return nil, s.err
}

func (s *stubQuerier) GetGenerationState(_ context.Context, _ string) (*workflows.GenerationState, error) {
	return s.state, s.err
}

func (s *stubQuerier) DescribeWorkflow(_ context.Context, _ string) (*querier.WorkflowDescription, error) {
	return nil, s.err
}

func connect(t *testing.T, model *testutil.ScriptedLLM, q querier.WorkflowQuerier) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	a, err := agent.New(agent.Options{Config: config.AgentConfig{}, Inference: model})
	require.NoError(t, err)

	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "v1"}, nil)
	mcpserver.RegisterTools(server, a, q)

	serverT, clientT := mcp.NewInMemoryTransports()
	_, err = server.Connect(ctx, serverT, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v1"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestRegisterTools(t *testing.T) {
	cs := connect(t, testutil.NewScriptedLLM(), &stubQuerier{})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"generate_ui", "list_components", "generation_status"}, names)
}

func TestRegisterTools_NoQuerier(t *testing.T) {
	cs := connect(t, testutil.NewScriptedLLM(), nil)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	for _, tool := range res.Tools {
		assert.NotEqual(t, "generation_status", tool.Name)
	}
}

func TestGenerateUI(t *testing.T) {
	model := testutil.NewScriptedLLM(`{"title": "Toy Story", "reasonForTheComponentSelection": "One movie",
		"confidenceScore": "95%", "component": "one-card",
		"fields": [{"name": "Title", "data_path": "movie.title"}]}`)
	cs := connect(t, model, nil)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "generate_ui",
		Arguments: map[string]any{
			"prompt": "Show Toy Story",
			"inputs": []map[string]any{{"id": "in-1", "data": `{"movie": {"title": "Toy Story"}}`}},
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var out struct {
		Blocks []domain.UIBlock `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, "in-1", out.Blocks[0].ID)
	assert.Equal(t, domain.ComponentOneCard, out.Blocks[0].Configuration.Component)
}

func TestGenerateUI_AllFailed(t *testing.T) {
	cs := connect(t, testutil.NewScriptedLLM("no json here"), nil)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "generate_ui",
		Arguments: map[string]any{
			"prompt": "Show",
			"inputs": []map[string]any{{"id": "in-1", "data": `{"a": 1}`}},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "input in-1 failed at invalid_metadata")
}

func TestListComponents(t *testing.T) {
	cs := connect(t, testutil.NewScriptedLLM(), nil)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_components",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"one-card"`)
}

func TestGenerationStatus(t *testing.T) {
	q := &stubQuerier{state: &workflows.GenerationState{Prompt: "Show", Done: true}}
	cs := connect(t, testutil.NewScriptedLLM(), q)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "generation_status",
		Arguments: map[string]any{"workflow_id": ""},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "generation_status",
		Arguments: map[string]any{"workflow_id": "wf-1"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"done": true`)
}
