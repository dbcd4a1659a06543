package inputdata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

func TestDetect(t *testing.T) {
	t.Parallel()
	reg := DefaultRegistry()
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "json object", raw: `{"movie": {"title": "Toy Story"}}`, want: NameJSON},
		{name: "json array", raw: "  [1, 2, 3]", want: NameJSON},
		{name: "prometheus", raw: `{"resultType":"matrix","result":[]}`, want: NamePrometheus},
		{name: "athena", raw: `{"UpdateCount":0,"ResultSet":{"Rows":[]}}`, want: NameAthena},
		{name: "cost explorer", raw: `{"ResultsByTime":[]}`, want: NameCostExplorer},
		{name: "cloudwatch", raw: `{"MetricDataResults":[]}`, want: NameCloudWatch},
		{name: "tags", raw: `{"ResourceTagMappingList":[]}`, want: NameAWSTags},
		{name: "codedeploy", raw: `{"deploymentsInfo":[]}`, want: NameCodeDeploy},
		{name: "csv comma", raw: "name,age\nbob,3\n", want: NameCSVComma},
		{name: "csv semicolon", raw: "name;age\nbob;3\n", want: NameCSVSemicolon},
		{name: "csv tab", raw: "name\tage\nbob\t3\n", want: NameCSVTab},
		{name: "yaml mapping", raw: "movie:\n  title: Toy Story\n", want: NameYAML},
		{name: "yaml sequence", raw: "- a\n- b\n", want: NameYAML},
		{name: "plain text falls back to json", raw: "hello world", want: NameJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reg.Detect(tt.raw).Name())
		})
	}
}

func TestDetectLooksOnlyAtHead(t *testing.T) {
	t.Parallel()
	raw := `{"padding":"` + strings.Repeat("x", 2000) + `","resultType":"matrix"}`
	assert.Equal(t, NameJSON, DefaultRegistry().Detect(raw).Name())
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()
	reg := DefaultRegistry()
	in := domain.InputData{ID: "1", Data: `{"a":1}`}

	tr, err := reg.Resolve(in, "", "")
	require.NoError(t, err)
	assert.Equal(t, NameJSON, tr.Name())

	tr, err = reg.Resolve(in, "", NameYAML)
	require.NoError(t, err)
	assert.Equal(t, NameYAML, tr.Name(), "configured default beats detection")

	tr, err = reg.Resolve(in, NameCSVComma, NameYAML)
	require.NoError(t, err)
	assert.Equal(t, NameCSVComma, tr.Name(), "type override beats default")

	in.TransformerName = NameNoop
	tr, err = reg.Resolve(in, NameCSVComma, NameYAML)
	require.NoError(t, err)
	assert.Equal(t, NameNoop, tr.Name(), "explicit input name wins")

	in.TransformerName = "xml"
	_, err = reg.Resolve(in, "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTransformer))
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()
	_, err := NewRegistry(JSON{}, JSON{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
	assert.Contains(t, DefaultRegistry().Names(), NameNoop)
}

func TestJSONTransform(t *testing.T) {
	t.Parallel()
	v, err := JSON{}.Transform(`{"movie":{"year":1995}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"movie": map[string]any{"year": 1995.0}}, v)

	_, err = JSON{}.Transform(`"just a string"`)
	assert.True(t, errors.Is(err, domain.ErrRootNotObjectOrArray))

	_, err = JSON{}.Transform(`42`)
	assert.True(t, errors.Is(err, domain.ErrRootNotObjectOrArray))

	_, err = JSON{}.Transform(`{"broken":`)
	assert.True(t, errors.Is(err, domain.ErrInvalidInputFormat))
}

func TestYAMLTransform(t *testing.T) {
	t.Parallel()
	v, err := YAML{}.Transform("movie:\n  title: Toy Story\n  year: 1995\n  tags: [a, b]\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"movie": map[string]any{"title": "Toy Story", "year": 1995.0, "tags": []any{"a", "b"}},
	}, v)

	_, err = YAML{}.Transform("just text")
	assert.True(t, errors.Is(err, domain.ErrRootNotObjectOrArray))

	_, err = YAML{}.Transform("a: [unclosed")
	assert.True(t, errors.Is(err, domain.ErrInvalidInputFormat))
}

func TestNoop(t *testing.T) {
	t.Parallel()
	v, err := Noop{}.Transform("free text")
	require.NoError(t, err)
	assert.Equal(t, "free text", v)
	assert.False(t, Noop{}.Detect("free text"))
}
