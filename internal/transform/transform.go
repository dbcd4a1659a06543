// Package transform turns component metadata plus parsed data into the
// renderer-ready ComponentData of each component.
package transform

import (
	"log/slog"
	"sort"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/extract"
)

// Transformer builds ComponentData for one component.
type Transformer interface {
	Component() domain.Component
	// Process builds the component data. Field problems do not fail it.
	Process(meta domain.ComponentMetadata, data any) (domain.ComponentData, error)
	// Validate builds the component data and appends every problem found to errs.
	Validate(meta domain.ComponentMetadata, data any, errs []domain.ValidationError) (domain.ComponentData, []domain.ValidationError)
}

// Options configure the registry.
type Options struct {
	// ExpandAllFields fills fields_all on table and set-of-cards data.
	ExpandAllFields bool
	Logger          *slog.Logger
}

// Registry maps component tags to transformers.
type Registry struct {
	byComponent map[domain.Component]Transformer
}

// NewRegistry builds a registry holding a transformer for every known component.
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{byComponent: make(map[domain.Component]Transformer)}
	for _, t := range []Transformer{
		newOneCard(),
		newImage(),
		newVideo(),
		newAudio(),
		newSetOfCards(opts.ExpandAllFields),
		newTable(opts.ExpandAllFields),
		newChart(domain.ComponentChartBar, logger),
		newChart(domain.ComponentChartLine, logger),
		newChart(domain.ComponentChartPie, logger),
		newChart(domain.ComponentChartDonut, logger),
		newChart(domain.ComponentChartMirroredBar, logger),
		handBuilt{},
	} {
		r.byComponent[t.Component()] = t
	}
	return r
}

// Get returns the transformer for c.
func (r *Registry) Get(c domain.Component) (Transformer, error) {
	t, ok := r.byComponent[c]
	if !ok {
		return nil, domain.Errorf(domain.CodeInvalidComponentMetadata, "no data transformer for component %q", c)
	}
	return t, nil
}

// Components lists the registered component tags, sorted.
func (r *Registry) Components() []domain.Component {
	out := make([]domain.Component, 0, len(r.byComponent))
	for c := range r.byComponent {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// buildFunc assembles component data from extracted fields.
type buildFunc func(base domain.ComponentDataBase, meta domain.ComponentMetadata, fields []domain.DataField, data any) (domain.ComponentData, error)

// checkFunc appends component specific problems.
type checkFunc func(cd domain.ComponentData, meta domain.ComponentMetadata, errs []domain.ValidationError) []domain.ValidationError

// fieldTransformer is the shared extract-then-build pipeline.
type fieldTransformer struct {
	component domain.Component
	build     buildFunc
	check     checkFunc
}

func (t *fieldTransformer) Component() domain.Component { return t.component }

func (t *fieldTransformer) Process(meta domain.ComponentMetadata, data any) (domain.ComponentData, error) {
	fields, _ := extract.Fields(meta.Fields, data, extract.OptionsFor(t.component))
	return t.build(baseOf(meta, t.component), meta, fields, data)
}

func (t *fieldTransformer) Validate(meta domain.ComponentMetadata, data any, errs []domain.ValidationError) (domain.ComponentData, []domain.ValidationError) {
	fields, fieldErrs := extract.Fields(meta.Fields, data, extract.OptionsFor(t.component))
	errs = append(errs, fieldErrs...)
	cd, err := t.build(baseOf(meta, t.component), meta, fields, data)
	if err != nil {
		code := string(domain.CodeOf(err))
		if code == "" {
			code = string(domain.CodeInvalidComponentMetadata)
		}
		return nil, append(errs, domain.ValidationError{Code: code, Message: err.Error()})
	}
	if t.check != nil {
		errs = t.check(cd, meta, errs)
	}
	return cd, errs
}

func baseOf(meta domain.ComponentMetadata, c domain.Component) domain.ComponentDataBase {
	return domain.ComponentDataBase{ID: meta.ID, Title: meta.Title, Component: c}
}

// without returns fields minus the entries at the given indexes.
func without(fields []domain.DataField, drop ...int) []domain.DataField {
	out := make([]domain.DataField, 0, len(fields))
outer:
	for i, f := range fields {
		for _, d := range drop {
			if i == d {
				continue outer
			}
		}
		out = append(out, f)
	}
	return out
}
