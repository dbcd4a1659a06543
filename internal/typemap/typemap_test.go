package typemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func load(t *testing.T, yaml string) map[string]config.DataTypeConfig {
	t.Helper()
	cfg, err := config.ParseAgentConfig(strings.NewReader(yaml))
	require.NoError(t, err)
	return cfg.DataTypes
}

func TestShortCircuitHandBuilt(t *testing.T) {
	t.Parallel()
	r, err := New(load(t, `
data_types:
  my.type:
    components:
      - component: one-card-special
`))
	require.NoError(t, err)

	data := map[string]any{"a": 1.0}
	m, ok := r.ShortCircuit(domain.InputData{ID: "in-1", Type: "my.type"}, data)
	require.True(t, ok)
	assert.Equal(t, "in-1", m.ID)
	assert.Equal(t, domain.ComponentHandBuilt, m.Component)
	assert.Equal(t, "one-card-special", m.ComponentType)
	assert.Equal(t, "", m.Title)
	assert.Equal(t, data, m.Data)
}

func TestShortCircuitConfigured(t *testing.T) {
	t.Parallel()
	r, err := New(load(t, `
data_types:
  my.movies:
    components:
      - component: table
        configuration:
          title: Movies
          on_row_click: openMovie
          fields:
            - name: Title
              data_path: movies[*].title
`))
	require.NoError(t, err)

	m, ok := r.ShortCircuit(domain.InputData{ID: "in-2", Type: "my.movies"}, nil)
	require.True(t, ok)
	assert.Equal(t, domain.ComponentTable, m.Component)
	assert.Equal(t, "Movies", m.Title)
	assert.Equal(t, "openMovie", m.OnRowClick)
	assert.Equal(t, []domain.DataField{{Name: "Title", DataPath: "movies[*].title"}}, m.Fields)
	assert.Equal(t, "my.movies", m.DataType)
}

func TestHandBuildRequestWins(t *testing.T) {
	t.Parallel()
	r, err := New(load(t, `
data_types:
  my.movies:
    components:
      - component: table
        configuration:
          title: Movies
          fields: [{name: Title, data_path: "movies[*].title"}]
`))
	require.NoError(t, err)
	m, ok := r.ShortCircuit(domain.InputData{ID: "x", Type: "my.movies", HandBuildComponentType: "custom"}, nil)
	require.True(t, ok)
	assert.Equal(t, domain.ComponentHandBuilt, m.Component)
	assert.Equal(t, "custom", m.ComponentType)
}

func TestLLMConfiguredEntriesDoNotShortCircuit(t *testing.T) {
	t.Parallel()
	r, err := New(map[string]config.DataTypeConfig{
		"single": {Components: []config.ComponentMapping{{Component: "one-card"}}},
		"multi": {Components: []config.ComponentMapping{
			{Component: "table"},
			{Component: "movie-poster", Prompt: &config.ComponentPromptOverride{Description: ptr("Poster wall for movies")}},
		}},
		"plain": {DataTransformer: "yaml"},
	})
	require.NoError(t, err)

	for _, dt := range []string{"single", "multi", "plain", "unknown"} {
		_, ok := r.ShortCircuit(domain.InputData{ID: "x", Type: dt}, nil)
		assert.False(t, ok, dt)
	}

	e, ok := r.Lookup("multi")
	require.True(t, ok)
	require.Len(t, e.Candidates, 2)
	assert.Equal(t, "table", e.Candidates[0].Name())
	assert.Equal(t, "movie-poster", e.Candidates[1].Name())
	assert.Equal(t, domain.ComponentHandBuilt, e.Candidates[1].Component)
	assert.Equal(t, "Poster wall for movies", e.Candidates[1].Description)

	_, ok = r.Lookup("plain")
	assert.False(t, ok)
	assert.Equal(t, "yaml", r.TransformerFor("plain"))
	assert.Equal(t, "", r.TransformerFor("single"))
	assert.Equal(t, map[string]string{"plain": "yaml"}, r.Transformers())
}

func TestNewRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mapping []config.ComponentMapping
		wantMsg string
	}{
		{name: "dynamic without configuration",
			mapping: []config.ComponentMapping{{Component: "one-card", LLMConfigure: ptr(false)}},
			wantMsg: "needs a configuration"},
		{name: "hand-built with llm_configure",
			mapping: []config.ComponentMapping{{Component: "special", LLMConfigure: ptr(true)}},
			wantMsg: "cannot set llm_configure"},
		{name: "hand-built with configuration",
			mapping: []config.ComponentMapping{{Component: "special", Configuration: &config.ComponentConfiguration{Title: "x"}}},
			wantMsg: "cannot set llm_configure"},
		{name: "multi hand-built without description",
			mapping: []config.ComponentMapping{{Component: "table"}, {Component: "special"}},
			wantMsg: "needs prompt.description"},
		{name: "empty component",
			mapping: []config.ComponentMapping{{Component: " "}},
			wantMsg: "component is required"},
		{name: "generic hand-built tag",
			mapping: []config.ComponentMapping{{Component: "hand-build-component"}},
			wantMsg: "name the hand-built component type"},
		{name: "configured field without path",
			mapping: []config.ComponentMapping{{Component: "one-card", Configuration: &config.ComponentConfiguration{
				Title: "x", Fields: []config.FieldConfig{{Name: "A"}}}}},
			wantMsg: "fields[0]: data_path is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(map[string]config.DataTypeConfig{"t": {Components: tt.mapping}})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestConfiguredCandidateInMultiMapping(t *testing.T) {
	t.Parallel()
	r, err := New(map[string]config.DataTypeConfig{
		"t": {Components: []config.ComponentMapping{
			{Component: "table", Configuration: &config.ComponentConfiguration{Title: "Rows",
				Fields: []config.FieldConfig{{Name: "A", DataPath: "rows[*].a"}}}},
			{Component: "chart-bar"},
		}},
	})
	require.NoError(t, err)
	e, _ := r.Lookup("t")
	assert.False(t, e.Fixed())
	require.NotNil(t, e.Candidates[0].Configured)

	var m domain.ComponentMetadata
	Apply(&m, e.Candidates[0].Configured)
	assert.Equal(t, "Rows", m.Title)
	assert.Equal(t, "rows[*].a", m.Fields[0].DataPath)
}
