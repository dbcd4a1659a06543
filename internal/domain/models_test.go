package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputDataGeneratesID(t *testing.T) {
	t.Parallel()
	a := NewInputData(`{"a":1}`, "my.type")
	b := NewInputData(`{"a":1}`, "my.type")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "my.type", a.Type)
}

func TestConfidenceScoreAcceptsStringAndNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want ConfidenceScore
	}{
		{raw: `{"confidenceScore":"85%"}`, want: "85%"},
		{raw: `{"confidenceScore":0.9}`, want: "0.9"},
		{raw: `{"confidenceScore":75}`, want: "75"},
		{raw: `{"confidenceScore":null}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			var m ComponentMetadata
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			assert.Equal(t, tt.want, m.ConfidenceScore)
		})
	}
}

func TestComponentDataJSONFlattensBase(t *testing.T) {
	t.Parallel()
	d := &ComponentDataOneCard{
		ComponentDataBase: ComponentDataBase{ID: "in-1", Title: "Toy Story", Component: ComponentOneCard},
		Image:             "https://i.example/p.jpg",
		Fields:            []DataField{{Name: "Year", DataPath: "$..movie.year", Data: []any{1995.0}}},
	}
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "in-1", got["id"])
	assert.Equal(t, "one-card", got["component"])
	assert.Equal(t, "https://i.example/p.jpg", got["image"])
	assert.Len(t, got["fields"], 1)

	var cd ComponentData = d
	assert.Equal(t, ComponentOneCard, cd.Base().Component)
}

func TestNewUIBlockConfigurationDropsData(t *testing.T) {
	t.Parallel()
	m := ComponentMetadata{
		ID:              "in-1",
		Title:           "Movies",
		Reason:          "list of movies",
		ConfidenceScore: "90%",
		Component:       ComponentTable,
		Fields:          []DataField{{ID: "abc", Name: "Title", DataPath: "$..movies[*].title", Data: []any{"A", "B"}}},
	}
	cfg := NewUIBlockConfiguration(m)
	require.Len(t, cfg.Fields, 1)
	assert.Nil(t, cfg.Fields[0].Data)
	assert.Equal(t, "$..movies[*].title", cfg.Fields[0].DataPath)
	assert.Equal(t, ComponentTable, cfg.Component)
	assert.Equal(t, []any{"A", "B"}, m.Fields[0].Data, "metadata must not be modified")
}

func TestCloneFieldsIsDeep(t *testing.T) {
	t.Parallel()
	in := []DataField{{Name: "A", DataPath: "$..a", Data: []any{1.0}}}
	out := CloneFields(in)
	out[0].Data[0] = 2.0
	out[0].Name = "B"
	assert.Equal(t, 1.0, in[0].Data[0])
	assert.Equal(t, "A", in[0].Name)
	assert.Nil(t, CloneFields(nil))
}
