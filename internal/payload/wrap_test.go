package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"my.movies", "my_movies"},
		{"movies", "movies"},
		{"under_score-dash", "under_score-dash"},
		{"1st list", "field_1st_list"},
		{"-x", "field_-x"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeKey(tt.in), "SanitizeKey(%q)", tt.in)
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()
	multi := map[string]any{"title": "A", "year": 1.0}
	single := map[string]any{"movie": map[string]any{"title": "A"}}
	list := []any{1.0, 2.0}

	tests := []struct {
		name     string
		tree     any
		dataType string
		want     any
		wantKey  string
	}{
		{name: "multi-field object", tree: multi, dataType: "my.movie", want: map[string]any{"my_movie": multi}, wantKey: "my_movie"},
		{name: "array", tree: list, dataType: "nums", want: map[string]any{"nums": list}, wantKey: "nums"},
		{name: "string", tree: "hello", dataType: "text", want: map[string]any{"text": "hello"}, wantKey: "text"},
		{name: "single-field object passes through", tree: single, dataType: "movie", want: single},
		{name: "no type means no wrapping", tree: multi, dataType: "", want: multi},
		{name: "blank type means no wrapping", tree: list, dataType: "  ", want: list},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, key := Wrap(tt.tree, tt.dataType)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
