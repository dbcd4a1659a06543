// Package typemap holds the per-data-type component mappings that let known
// payload types skip or narrow LLM selection.
package typemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// Candidate is one component the LLM may pick for a data type.
type Candidate struct {
	Component domain.Component
	// ComponentType names the hand-built component when Component is hand-build-component.
	ComponentType string
	// Description is advertised to the LLM for hand-built candidates.
	Description string
	// Configured, when set, replaces the LLM's title and fields once this
	// candidate is chosen.
	Configured *config.ComponentConfiguration
}

// Name is the tag the LLM sees for this candidate.
func (c Candidate) Name() string {
	if c.Component == domain.ComponentHandBuilt {
		return c.ComponentType
	}
	return string(c.Component)
}

// Entry is the resolved mapping for one data type.
type Entry struct {
	DataType   string
	Candidates []Candidate
}

// Fixed reports whether the entry resolves without an LLM call.
func (e Entry) Fixed() bool {
	return len(e.Candidates) == 1 &&
		(e.Candidates[0].Component == domain.ComponentHandBuilt || e.Candidates[0].Configured != nil)
}

// Registry maps data types to their entries and input transformer names.
// It is built once and read-only afterwards.
type Registry struct {
	entries      map[string]Entry
	transformers map[string]string
}

// New validates and indexes the data_types section of an agent configuration.
func New(types map[string]config.DataTypeConfig) (*Registry, error) {
	r := &Registry{
		entries:      make(map[string]Entry, len(types)),
		transformers: make(map[string]string, len(types)),
	}
	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, dataType := range keys {
		dt := types[dataType]
		if dt.DataTransformer != "" {
			r.transformers[dataType] = dt.DataTransformer
		}
		if len(dt.Components) == 0 {
			continue
		}
		entry := Entry{DataType: dataType}
		multi := len(dt.Components) > 1
		for i, m := range dt.Components {
			c, err := candidate(dataType, i, m, multi)
			if err != nil {
				return nil, err
			}
			entry.Candidates = append(entry.Candidates, c)
		}
		r.entries[dataType] = entry
	}
	return r, nil
}

func candidate(dataType string, i int, m config.ComponentMapping, multi bool) (Candidate, error) {
	name := strings.TrimSpace(m.Component)
	where := func(format string, args ...any) error {
		return domain.Errorf(domain.CodeInvalidConfiguration, "config: data_types[%q].components[%d]: %s",
			dataType, i, fmt.Sprintf(format, args...))
	}
	switch {
	case name == "":
		return Candidate{}, where("component is required")
	case name == string(domain.ComponentHandBuilt):
		return Candidate{}, where("name the hand-built component type instead of %s", name)
	}

	comp := domain.Component(name)
	if comp.Dynamic() {
		c := Candidate{Component: comp}
		llmConfigure := (m.LLMConfigure == nil && m.Configuration == nil) || (m.LLMConfigure != nil && *m.LLMConfigure)
		if !llmConfigure {
			if m.Configuration == nil {
				return Candidate{}, where("component %s needs a configuration when llm_configure is false", name)
			}
			for j, f := range m.Configuration.Fields {
				if strings.TrimSpace(f.DataPath) == "" {
					return Candidate{}, where("configuration.fields[%d]: data_path is required", j)
				}
			}
			c.Configured = m.Configuration
		}
		if m.Prompt != nil && m.Prompt.Description != nil {
			c.Description = *m.Prompt.Description
		}
		return c, nil
	}

	if m.LLMConfigure != nil || m.Configuration != nil {
		return Candidate{}, where("hand-built component %s cannot set llm_configure or configuration", name)
	}
	c := Candidate{Component: domain.ComponentHandBuilt, ComponentType: name}
	if m.Prompt != nil && m.Prompt.Description != nil {
		c.Description = strings.TrimSpace(*m.Prompt.Description)
	}
	if multi && c.Description == "" {
		return Candidate{}, where("hand-built component %s needs prompt.description when several components are mapped", name)
	}
	return c, nil
}

// Lookup returns the entry for a data type.
func (r *Registry) Lookup(dataType string) (Entry, bool) {
	e, ok := r.entries[dataType]
	return e, ok
}

// TransformerFor returns the input transformer configured for a data type, or "".
func (r *Registry) TransformerFor(dataType string) string {
	return r.transformers[dataType]
}

// Transformers lists every configured transformer name, for init-time checks.
func (r *Registry) Transformers() map[string]string {
	out := make(map[string]string, len(r.transformers))
	for k, v := range r.transformers {
		out[k] = v
	}
	return out
}

// ShortCircuit returns the metadata for inputs that skip the LLM: an explicit
// hand_build_component_type, or a data type mapped to a single hand-built or
// fully configured component. data is the parsed tree the fields resolve against.
func (r *Registry) ShortCircuit(in domain.InputData, data any) (domain.ComponentMetadata, bool) {
	if in.HandBuildComponentType != "" {
		return HandBuilt(in, in.HandBuildComponentType, data), true
	}
	e, ok := r.entries[in.Type]
	if !ok || !e.Fixed() {
		return domain.ComponentMetadata{}, false
	}
	c := e.Candidates[0]
	if c.Component == domain.ComponentHandBuilt {
		return HandBuilt(in, c.ComponentType, data), true
	}
	m := domain.ComponentMetadata{
		ID:        in.ID,
		Component: c.Component,
		DataType:  in.Type,
		Data:      data,
	}
	Apply(&m, c.Configured)
	return m, true
}

// HandBuilt builds the metadata of a caller-rendered component.
func HandBuilt(in domain.InputData, componentType string, data any) domain.ComponentMetadata {
	return domain.ComponentMetadata{
		ID:            in.ID,
		Title:         "",
		Component:     domain.ComponentHandBuilt,
		ComponentType: componentType,
		Fields:        []domain.DataField{},
		DataType:      in.Type,
		Data:          data,
	}
}

// Apply copies a fixed configuration into metadata.
func Apply(m *domain.ComponentMetadata, cfg *config.ComponentConfiguration) {
	if cfg == nil {
		return
	}
	m.Title = cfg.Title
	m.OnRowClick = cfg.OnRowClick
	m.Fields = make([]domain.DataField, len(cfg.Fields))
	for i, f := range cfg.Fields {
		m.Fields[i] = domain.DataField{Name: f.Name, DataPath: f.DataPath}
	}
}
