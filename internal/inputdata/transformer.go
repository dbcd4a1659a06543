// Package inputdata converts raw payload strings into parsed trees.
package inputdata

import (
	"fmt"
	"sort"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// detectWindow is how much of a payload detection heuristics look at.
const detectWindow = 1024

// Names of the built-in transformers.
const (
	NameJSON         = "json"
	NameYAML         = "yaml"
	NameCSVComma     = "csv-comma"
	NameCSVSemicolon = "csv-semicolon"
	NameCSVTab       = "csv-tab"
	NamePrometheus   = "prometheus"
	NameNoop         = "noop"
	NameAthena       = "athena"
	NameCostExplorer = "costexplorer"
	NameCloudWatch   = "cloudwatch"
	NameAWSTags      = "aws-tags"
	NameCodeDeploy   = "codedeploy"
)

// Transformer parses one payload format.
type Transformer interface {
	Name() string
	// Transform parses raw into a tree of map[string]any, []any, string,
	// float64, bool and nil values.
	Transform(raw string) (any, error)
	// Detect is a cheap heuristic over the head of the payload.
	Detect(head string) bool
}

// Registry holds transformers by name and in detection order.
type Registry struct {
	order  []Transformer
	byName map[string]Transformer
}

// NewRegistry creates a registry. Detection follows registration order.
func NewRegistry(ts ...Transformer) (*Registry, error) {
	r := &Registry{byName: make(map[string]Transformer, len(ts))}
	for _, t := range ts {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns the built-in transformers. Shape-specific JSON
// formats come before generic JSON, and YAML comes last because it accepts
// most text.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Prometheus{},
		Athena{},
		CostExplorer{},
		CloudWatch{},
		AWSTags{},
		CodeDeploy{},
		JSON{},
		NewCSV(NameCSVTab, '\t'),
		NewCSV(NameCSVSemicolon, ';'),
		NewCSV(NameCSVComma, ','),
		YAML{},
		Noop{},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a transformer. Names must be unique.
func (r *Registry) Register(t Transformer) error {
	if _, dup := r.byName[t.Name()]; dup {
		return domain.Errorf(domain.CodeInvalidConfiguration, "input transformer %q registered twice", t.Name())
	}
	r.byName[t.Name()] = t
	r.order = append(r.order, t)
	return nil
}

// Get returns the named transformer.
func (r *Registry) Get(name string) (Transformer, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, domain.Errorf(domain.CodeUnknownTransformer, "unknown input transformer %q", name)
	}
	return t, nil
}

// Names lists registered transformer names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Detect picks the first transformer whose heuristic matches, falling back to json.
func (r *Registry) Detect(raw string) Transformer {
	head := raw
	if len(head) > detectWindow {
		head = head[:detectWindow]
	}
	for _, t := range r.order {
		if t.Detect(head) {
			return t
		}
	}
	if t, ok := r.byName[NameJSON]; ok {
		return t
	}
	return JSON{}
}

// Resolve chooses the transformer for an input: an explicit name on the input
// wins, then the per-type override, then the configured default, then detection.
func (r *Registry) Resolve(in domain.InputData, typeOverride, defaultName string) (Transformer, error) {
	for _, name := range []string{in.TransformerName, typeOverride, defaultName} {
		if name != "" {
			t, err := r.Get(name)
			if err != nil {
				return nil, fmt.Errorf("input %q: %w", in.ID, err)
			}
			return t, nil
		}
	}
	return r.Detect(in.Data), nil
}

// checkRoot enforces the object-or-array root rule shared by structured formats.
func checkRoot(name string, v any) error {
	switch v.(type) {
	case map[string]any, []any:
		return nil
	}
	return domain.Errorf(domain.CodeRootNotObjectOrArray, "%s: root must be an object or array, got %T", name, v)
}
