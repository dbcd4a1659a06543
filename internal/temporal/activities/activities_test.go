package activities_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/ratelimit"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/activities"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/testutil"
)

const oneCardAnswer = `{"title": "Toy Story", "reasonForTheComponentSelection": "One movie",
	"confidenceScore": "90%", "component": "one-card",
	"fields": [{"name": "Title", "data_path": "movie.title"}, {"name": "Year", "data_path": "movie.year"}]}`

func newTestActivities(t *testing.T, model *testutil.ScriptedLLM) *activities.Activities {
	t.Helper()
	a, err := agent.New(agent.Options{Config: config.AgentConfig{}, Inference: model})
	require.NoError(t, err)
	return &activities.Activities{Agent: a}
}

func movieInput(t *testing.T) domain.InputData {
	t.Helper()
	data, err := testutil.Fixture("movie.json")
	require.NoError(t, err)
	return domain.InputData{ID: "in-1", Data: data}
}

func TestSelectThenBuild(t *testing.T) {
	a := newTestActivities(t, testutil.NewScriptedLLM(oneCardAnswer))
	ctx := context.Background()

	sel, err := a.SelectComponent(ctx, activities.SelectComponentInput{Prompt: "Show Toy Story", Input: movieInput(t)})
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentOneCard, sel.Metadata.Component)
	assert.Nil(t, sel.Metadata.Data)

	out, err := a.BuildBlock(ctx, activities.BuildBlockInput{Input: movieInput(t), Metadata: sel.Metadata})
	require.NoError(t, err)
	require.NotNil(t, out.Block)
	assert.Empty(t, out.Errors)
	assert.Equal(t, "in-1", out.Block.ID)
	assert.Contains(t, out.Block.Rendering.Content, "Toy Story")
}

func TestBuildBlockReportsValidationErrors(t *testing.T) {
	a := newTestActivities(t, testutil.NewScriptedLLM())
	m := domain.ComponentMetadata{
		ID:        "in-1",
		Title:     "Missing",
		Component: domain.ComponentOneCard,
		Fields:    []domain.DataField{{Name: "Nope", DataPath: "movie.nope"}},
	}
	out, err := a.BuildBlock(context.Background(), activities.BuildBlockInput{Input: movieInput(t), Metadata: m})
	require.NoError(t, err)
	assert.Nil(t, out.Block)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "fields[0].data_path.invalid", out.Errors[0].Code)
}

func TestSelectComponentErrorsAreNonRetryable(t *testing.T) {
	a := newTestActivities(t, testutil.NewScriptedLLM("not json"))
	_, err := a.SelectComponent(context.Background(), activities.SelectComponentInput{Prompt: "show", Input: movieInput(t)})
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, string(domain.CodeInvalidJSONFromLLM), appErr.Type())
}

func TestSessionBudget(t *testing.T) {
	a := newTestActivities(t, testutil.NewScriptedLLM(oneCardAnswer, oneCardAnswer))
	a.Budget = ratelimit.NewSessionBudget(1, time.Hour)
	in := activities.SelectComponentInput{SessionID: "s-1", Prompt: "show", Input: movieInput(t)}

	_, err := a.SelectComponent(context.Background(), in)
	require.NoError(t, err)
	_, err = a.SelectComponent(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session budget exceeded")

	in.SessionID = "s-2"
	_, err = a.SelectComponent(context.Background(), in)
	require.NoError(t, err)
}
