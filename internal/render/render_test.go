package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

func base(c domain.Component, title string) domain.ComponentDataBase {
	return domain.ComponentDataBase{ID: "in-1", Title: title, Component: c}
}

func TestRegistryAlwaysHasJSON(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	f, err := r.Get("json")
	require.NoError(t, err)
	assert.Equal(t, JSONName, f.Name())
	assert.Equal(t, []string{"html", "json"}, DefaultRegistry().Names())
}

func TestRegistryUnknownSystem(t *testing.T) {
	t.Parallel()
	_, err := DefaultRegistry().Get("patternfly")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownComponentSystem)
}

func TestJSONBlock(t *testing.T) {
	t.Parallel()
	cd := &domain.ComponentDataOneCard{
		ComponentDataBase: base(domain.ComponentOneCard, "Toy Story"),
		Fields:            []domain.DataField{{ID: "f1", Name: "Year", DataPath: "$..movie.year", Data: []any{1995.0}}},
	}
	meta := domain.ComponentMetadata{
		ID:              "in-1",
		Title:           "Toy Story",
		Component:       domain.ComponentOneCard,
		Reason:          "single item",
		ConfidenceScore: "90%",
		Fields:          cd.Fields,
		DataType:        "movie.detail",
	}

	block, err := Block(JSONFactory{}, cd, meta)
	require.NoError(t, err)
	assert.Equal(t, "in-1", block.ID)
	require.NotNil(t, block.Rendering)
	assert.Equal(t, "json", block.Rendering.ComponentSystem)
	assert.Equal(t, "application/json", block.Rendering.MimeType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(block.Rendering.Content), &decoded))
	assert.Equal(t, "one-card", decoded["component"])
	assert.Equal(t, "Toy Story", decoded["title"])

	require.NotNil(t, block.Configuration)
	assert.Equal(t, "single item", block.Configuration.Reason)
	assert.Equal(t, "movie.detail", block.Configuration.DataType)
	require.Len(t, block.Configuration.Fields, 1)
	assert.Nil(t, block.Configuration.Fields[0].Data)
}

func TestHTMLRendersEachComponent(t *testing.T) {
	t.Parallel()
	year := domain.DataField{Name: "Year", DataPath: "$..year", Data: []any{1995.0, 1999.0}}
	title := domain.DataField{Name: "Title", DataPath: "$..title", Data: []any{"Toy Story", "Toy Story 2"}}

	tests := []struct {
		name string
		cd   domain.ComponentData
		want []string
	}{
		{
			name: "one card",
			cd: &domain.ComponentDataOneCard{
				ComponentDataBase: base(domain.ComponentOneCard, "Toy Story"),
				Image:             "https://img.example.com/toy.jpg",
				Fields:            []domain.DataField{{Name: "Year", Data: []any{1995.0}}},
			},
			want: []string{`<h2>Toy Story</h2>`, `src="https://img.example.com/toy.jpg"`, `<dt>Year</dt><dd>1995</dd>`},
		},
		{
			name: "image",
			cd:   &domain.ComponentDataImage{ComponentDataBase: base(domain.ComponentImage, "Poster"), Image: "https://img.example.com/p.png"},
			want: []string{`class="ngui-image"`, `src="https://img.example.com/p.png"`},
		},
		{
			name: "video",
			cd:   &domain.ComponentDataVideo{ComponentDataBase: base(domain.ComponentVideoPlayer, "Trailer"), Video: "https://www.youtube.com/embed/abc"},
			want: []string{`<iframe src="https://www.youtube.com/embed/abc"`},
		},
		{
			name: "audio",
			cd:   &domain.ComponentDataAudio{ComponentDataBase: base(domain.ComponentAudioPlayer, "Theme"), Audio: "https://cdn.example.com/t.mp3"},
			want: []string{`<audio controls src="https://cdn.example.com/t.mp3">`},
		},
		{
			name: "table",
			cd: &domain.ComponentDataTable{
				ComponentDataBase: base(domain.ComponentTable, "Movies"),
				Fields:            []domain.DataField{title, year},
			},
			want: []string{`<th>Title</th><th>Year</th>`, `<tr><td>Toy Story</td><td>1995</td></tr>`, `<tr><td>Toy Story 2</td><td>1999</td></tr>`},
		},
		{
			name: "set of cards",
			cd: &domain.ComponentDataSetOfCards{
				ComponentDataBase: base(domain.ComponentSetOfCards, "Movies"),
				SubtitleField:     &title,
				Fields:            []domain.DataField{year},
			},
			want: []string{`<h3>Toy Story</h3>`, `<h3>Toy Story 2</h3>`, `<dt>Year</dt><dd>1999</dd>`},
		},
		{
			name: "chart",
			cd: &domain.ComponentDataChart{
				ComponentDataBase: base(domain.ComponentChartBar, "Revenue"),
				Series:            []domain.ChartSeries{{Name: "Revenue", Data: []domain.ChartPoint{{X: "Mon", Y: 12.5}}}},
				XAxisLabel:        "Day",
			},
			want: []string{`class="ngui-chart-bar"`, `<th>Day</th><th>Revenue</th>`, `<td>Mon</td><td>12.5</td>`},
		},
		{
			name: "hand built",
			cd: &domain.ComponentDataHandBuilt{
				ComponentDataBase: base(domain.ComponentHandBuilt, ""),
				ComponentType:     "movies:one-card-special",
				Data:              map[string]any{"a": 1.0},
			},
			want: []string{`data-component-type="movies:one-card-special"`, `data-json="{&#34;a&#34;:1}"`},
		},
	}
	f := NewHTMLFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			block, err := Block(f, tt.cd, domain.ComponentMetadata{ID: "in-1", Component: tt.cd.Base().Component})
			require.NoError(t, err)
			assert.Equal(t, "text/html", block.Rendering.MimeType)
			assert.Equal(t, "html", block.Rendering.ComponentSystem)
			for _, w := range tt.want {
				assert.Contains(t, block.Rendering.Content, w)
			}
		})
	}
}

func TestHTMLEscapesValues(t *testing.T) {
	t.Parallel()
	cd := &domain.ComponentDataOneCard{
		ComponentDataBase: base(domain.ComponentOneCard, "<script>alert(1)</script>"),
	}
	s, err := NewHTMLFactory().RenderStrategy(cd)
	require.NoError(t, err)
	out, err := s.Render(cd)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderStrategyMissing(t *testing.T) {
	t.Parallel()
	_, err := NewHTMLFactory().RenderStrategy(nil)
	assert.ErrorIs(t, err, domain.ErrRenderStrategyMissing)
	_, err = JSONFactory{}.RenderStrategy(nil)
	assert.ErrorIs(t, err, domain.ErrRenderStrategyMissing)
}

func TestRowsPadsShortFields(t *testing.T) {
	t.Parallel()
	got := rows([]domain.DataField{{Data: []any{"a", "b"}}, {Data: []any{1.0}}})
	assert.Equal(t, [][]any{{"a", 1.0}, {"b", nil}}, got)
}
