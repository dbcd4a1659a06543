package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/testutil"
)

func document(t *testing.T, name string) []byte {
	t.Helper()
	docs, err := Documents()
	require.NoError(t, err)
	for _, d := range docs {
		if d.Name == name {
			b, err := Marshal(d.Schema)
			require.NoError(t, err)
			return b
		}
	}
	t.Fatalf("no schema %q", name)
	return nil
}

func validate(t *testing.T, schema []byte, doc any) *gojsonschema.Result {
	t.Helper()
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(doc))
	require.NoError(t, err)
	return res
}

func TestDocuments(t *testing.T) {
	t.Parallel()
	docs, err := Documents()
	require.NoError(t, err)
	require.Len(t, docs, 10)

	seen := make(map[string]bool)
	for _, d := range docs {
		assert.False(t, seen[d.Name], "duplicate %s", d.Name)
		seen[d.Name] = true
		assert.Equal(t, Draft, d.Schema.Schema)
		assert.Equal(t, d.Title, d.Schema.Title)
		assert.Equal(t, "object", d.Schema.Type)
		for name, p := range d.Schema.Properties {
			assert.Empty(t, p.Title, "%s.%s", d.Name, name)
		}
	}
	assert.True(t, seen["agent_config"])
	assert.True(t, seen["ui_block"])
	assert.True(t, seen["component_data_chart"])
}

// The spec directory is refreshed with `go generate ./internal/schema`.
func TestCheckedInSchemasMatch(t *testing.T) {
	t.Parallel()
	docs, err := Documents()
	require.NoError(t, err)
	for _, d := range docs {
		path := filepath.Join("..", "..", "spec", d.FileName())
		want, err := os.ReadFile(path)
		require.NoError(t, err, "%s is missing; run go generate ./internal/schema", path)
		got, err := Marshal(d.Schema)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), "%s is stale", path)
	}
}

func TestUIBlockSchemaAcceptsBlocks(t *testing.T) {
	t.Parallel()
	schema := document(t, "ui_block")
	block := domain.UIBlock{
		ID: "in-1",
		Rendering: &domain.UIBlockRendering{
			Content:         `{"component":"one-card"}`,
			ComponentSystem: "json",
			MimeType:        "application/json",
		},
		Configuration: domain.NewUIBlockConfiguration(domain.ComponentMetadata{
			Title:           "Toy Story",
			Component:       domain.ComponentOneCard,
			Reason:          "One movie",
			ConfidenceScore: "90%",
			Fields:          []domain.DataField{{Name: "Title", DataPath: "$..movie.title"}},
		}),
	}
	raw, err := json.Marshal(block)
	require.NoError(t, err)
	var doc any
	require.NoError(t, json.Unmarshal(raw, &doc))

	res := validate(t, schema, doc)
	assert.True(t, res.Valid(), "%v", res.Errors())

	res = validate(t, schema, map[string]any{"id": 5})
	assert.False(t, res.Valid())
}

func TestAgentConfigSchemaAcceptsFixture(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadAgentConfig(filepath.Join(testutil.FixturesDir(), "agent_config.yaml"))
	require.NoError(t, err)
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	var doc any
	require.NoError(t, json.Unmarshal(raw, &doc))

	res := validate(t, document(t, "agent_config"), doc)
	assert.True(t, res.Valid(), "%v", res.Errors())

	res = validate(t, document(t, "agent_config"), map[string]any{"component_system": "json", "colour": "blue"})
	assert.False(t, res.Valid())
}

func TestCheckedInSchemasAreComplete(t *testing.T) {
	t.Parallel()
	entries, err := os.ReadDir(filepath.Join("..", "..", "spec"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	docs, err := Documents()
	require.NoError(t, err)
	want := make([]string, 0, len(docs))
	for _, d := range docs {
		want = append(want, d.FileName())
	}
	assert.ElementsMatch(t, want, names, "spec/ holds exactly the generated schemas")
}

func TestWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths, err := Write(dir)
	require.NoError(t, err)
	require.Len(t, paths, len(sources))
	b, err := os.ReadFile(filepath.Join(dir, "ui_block.schema.json"))
	require.NoError(t, err)
	assert.Equal(t, document(t, "ui_block"), b)
}
