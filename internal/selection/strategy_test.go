package selection

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/prompts"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/testutil"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/typemap"
)

func newStrategy(t *testing.T, name domain.SelectionStrategy, yaml string, model *testutil.ScriptedLLM) Strategy {
	t.Helper()
	cfg, err := config.ParseAgentConfig(strings.NewReader(yaml))
	require.NoError(t, err)
	types, err := typemap.New(cfg.DataTypes)
	require.NoError(t, err)
	asm, err := prompts.NewAssembler(cfg, types)
	require.NoError(t, err)
	s, err := New(name, Deps{Inference: model, Prompts: asm})
	require.NoError(t, err)
	return s
}

func request(dataType string) Request {
	return Request{
		Prompt: "Show Toy Story details",
		Input:  domain.InputData{ID: "in-1", Type: dataType},
		Data:   `{"movie": {"title": "Toy Story"}}`,
	}
}

func TestOneCallSelect(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(`Sure! {"title": "Toy Story", "reasonForTheComponentSelection": "One movie",
		"confidenceScore": "90%", "component": "one-card",
		"fields": [{"name": "Title", "data_path": "movie.title"}]}`)
	s := newStrategy(t, domain.StrategyOneCall, "", model)
	assert.Equal(t, domain.StrategyOneCall, s.Name())

	m, err := s.Select(context.Background(), request(""))
	require.NoError(t, err)
	assert.Equal(t, "in-1", m.ID)
	assert.Equal(t, domain.ComponentOneCard, m.Component)
	assert.Equal(t, "Toy Story", m.Title)
	assert.Equal(t, "One movie", m.Reason)
	assert.Equal(t, domain.ConfidenceScore("90%"), m.ConfidenceScore)
	assert.Equal(t, []domain.DataField{{Name: "Title", DataPath: "movie.title"}}, m.Fields)

	calls := model.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].System, "AVAILABLE UI COMPONENTS:")
	assert.Contains(t, calls[0].User, "Show Toy Story details")
	assert.Contains(t, calls[0].User, `{"movie": {"title": "Toy Story"}}`)
}

func TestOneCallChartCorrection(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(`{"title": "Budget vs revenue", "component": "chart-bar",
		"reasonForTheComponentSelection": "A mirrored bar chart compares two metrics per movie",
		"fields": [{"name": "Movie", "data_path": "movies[*].title"}, {"name": "Budget", "data_path": "movies[*].budget"},
		{"name": "Revenue", "data_path": "movies[*].revenue"}]}`)
	s := newStrategy(t, domain.StrategyOneCall, "", model)

	m, err := s.Select(context.Background(), request(""))
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentChartMirroredBar, m.Component)
}

func TestOneCallErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection refused")
	tests := []struct {
		name  string
		model *testutil.ScriptedLLM
		want  *domain.Error
	}{
		{name: "invalid json", model: testutil.NewScriptedLLM("no idea"), want: domain.ErrInvalidJSONFromLLM},
		{name: "schema mismatch", model: testutil.NewScriptedLLM(`{"title": "T"}`), want: domain.ErrInvalidComponentMetadata},
		{name: "not selectable", model: testutil.NewScriptedLLM(`{"title": "T", "component": "table", "fields": []}`),
			want: domain.ErrInvalidComponentMetadata},
		{name: "unknown tag", model: testutil.NewScriptedLLM(`{"title": "T", "component": "chart", "fields": []}`),
			want: domain.ErrInvalidComponentMetadata},
		{name: "transport", model: testutil.NewScriptedLLM("").FailOn(0, boom), want: domain.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newStrategy(t, domain.StrategyOneCall, "", tt.model)
			_, err := s.Select(context.Background(), request(""))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTwoCallsSelect(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(
		`{"reasonForTheComponentSelection": "Compare movies", "confidenceScore": "80%", "component": "table"}`,
		`<think>pick fields</think>{"title": "Movies", "fields": [{"name": "Title", "data_path": "movies[*].title"}]}`,
	)
	s := newStrategy(t, domain.StrategyTwoCalls, "unsupported_components: true\n", model)
	assert.Equal(t, domain.StrategyTwoCalls, s.Name())

	m, err := s.Select(context.Background(), request(""))
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentTable, m.Component)
	assert.Equal(t, "Movies", m.Title)
	assert.Equal(t, "Compare movies", m.Reason)
	assert.Equal(t, domain.ConfidenceScore("80%"), m.ConfidenceScore)
	require.Len(t, m.Fields, 1)

	calls := model.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].System, "AVAILABLE UI COMPONENTS:")
	assert.NotContains(t, calls[0].System, "DATA PATH RULES:")
	assert.Contains(t, calls[1].System, "SELECTED COMPONENT:\ntable - ")
	assert.Equal(t, calls[0].User, calls[1].User)
}

func TestTwoCallsHandBuiltChoiceSkipsConfiguration(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(`{"reasonForTheComponentSelection": "Posters", "component": "movie-wall"}`)
	s := newStrategy(t, domain.StrategyTwoCalls, `
data_types:
  my.movies:
    components:
      - component: table
      - component: movie-wall
        prompt:
          description: poster wall
`, model)

	m, err := s.Select(context.Background(), request("my.movies"))
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentHandBuilt, m.Component)
	assert.Equal(t, "movie-wall", m.ComponentType)
	assert.Equal(t, "", m.Title)
	assert.Equal(t, "my.movies", m.DataType)
	assert.Equal(t, 1, model.CallCount())
}

func TestTwoCallsSingleCandidateSkipsSelection(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(`{"title": "Movies", "fields": [{"name": "Title", "data_path": "movies[*].title"}]}`)
	s := newStrategy(t, domain.StrategyTwoCalls, `
data_types:
  my.movies:
    components:
      - component: table
`, model)

	m, err := s.Select(context.Background(), request("my.movies"))
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentTable, m.Component)
	assert.Equal(t, 1, model.CallCount())
	assert.Contains(t, model.Calls()[0].System, "SELECTED COMPONENT:\ntable - ")
}

func TestTwoCallsStepTwoInvalid(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(`{"component": "one-card"}`, `{"fields": []}`)
	s := newStrategy(t, domain.StrategyTwoCalls, "", model)
	_, err := s.Select(context.Background(), request(""))
	assert.ErrorIs(t, err, domain.ErrInvalidComponentMetadata)
}

func TestOneCallConfiguredCandidateKeepsConfiguration(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(`{"title": "LLM title", "component": "table", "reasonForTheComponentSelection": "rows",
		"fields": [{"name": "X", "data_path": "x"}]}`)
	s := newStrategy(t, domain.StrategyOneCall, `
data_types:
  my.movies:
    components:
      - component: table
        configuration:
          title: Movies
          fields: [{name: Title, data_path: "movies[*].title"}]
      - component: chart-bar
`, model)

	m, err := s.Select(context.Background(), request("my.movies"))
	require.NoError(t, err)
	assert.Equal(t, "Movies", m.Title)
	assert.Equal(t, "rows", m.Reason)
	assert.Equal(t, []domain.DataField{{Name: "Title", DataPath: "movies[*].title"}}, m.Fields)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()
	model := testutil.NewScriptedLLM(`{"title": "T", "component": "one-card", "fields": []}`)
	s := newStrategy(t, domain.StrategyOneCall, "", model)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Select(ctx, request(""))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	t.Parallel()
	_, err := New("three_calls", Deps{Inference: testutil.NewScriptedLLM(), Prompts: &prompts.Assembler{}})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	_, err = New(domain.StrategyOneCall, Deps{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}
