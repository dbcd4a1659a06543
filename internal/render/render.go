// Package render turns ComponentData into UI blocks for a component system.
package render

import (
	"sort"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// Strategy renders one kind of component data.
type Strategy interface {
	Render(cd domain.ComponentData) (string, error)
	MimeType() string
	Name() string
}

// Factory returns the strategy for a piece of component data.
type Factory interface {
	Name() string
	RenderStrategy(cd domain.ComponentData) (Strategy, error)
}

// Registry maps component system names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry holding json plus the given factories.
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{factories: map[string]Factory{JSONName: JSONFactory{}}}
	for _, f := range factories {
		r.factories[f.Name()] = f
	}
	return r
}

// DefaultRegistry holds the built-in json and html factories.
func DefaultRegistry() *Registry {
	return NewRegistry(NewHTMLFactory())
}

// Get returns the factory for a component system.
func (r *Registry) Get(system string) (Factory, error) {
	f, ok := r.factories[system]
	if !ok {
		return nil, domain.Errorf(domain.CodeUnknownComponentSystem, "render: unknown component system %q", system)
	}
	return f, nil
}

// Names lists the registered component systems, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for n := range r.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Block renders component data with factory and wraps it with the
// configuration echo of the metadata it came from.
func Block(f Factory, cd domain.ComponentData, meta domain.ComponentMetadata) (domain.UIBlock, error) {
	s, err := f.RenderStrategy(cd)
	if err != nil {
		return domain.UIBlock{}, err
	}
	content, err := s.Render(cd)
	if err != nil {
		return domain.UIBlock{}, domain.Errorf(domain.CodeRenderStrategyMissing, "render: %s: %w", s.Name(), err)
	}
	return domain.UIBlock{
		ID: meta.ID,
		Rendering: &domain.UIBlockRendering{
			Content:         content,
			ComponentSystem: f.Name(),
			MimeType:        s.MimeType(),
		},
		Configuration: domain.NewUIBlockConfiguration(meta),
	}, nil
}
